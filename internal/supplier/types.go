package supplier

import "encoding/xml"

// Order is the document posted to the supplier's order-intake endpoint.
// Reference carries our transaction id so both sides can reconcile.
type Order struct {
	XMLName   xml.Name    `xml:"Order"`
	Reference string      `xml:"Reference"`
	Consignee Consignee   `xml:"Consignee"`
	Lines     []OrderLine `xml:"Lines>Line"`
}

type Consignee struct {
	Name        string `xml:"Name"`
	HouseNumber string `xml:"HouseNumber"`
	Street      string `xml:"Street"`
	City        string `xml:"City"`
	State       string `xml:"State,omitempty"`
	Postcode    string `xml:"Postcode"`
	Phone       string `xml:"Phone"`
}

type OrderLine struct {
	SKU      string `xml:"SKU"`
	Quantity int    `xml:"Quantity"`
}

// Catalog is the supplier's nightly product feed.
type Catalog struct {
	XMLName  xml.Name      `xml:"Catalog"`
	Products []FeedProduct `xml:"Product"`
}

type FeedProduct struct {
	SKU         string   `xml:"SKU"`
	Name        string   `xml:"Name"`
	Description string   `xml:"Description"`
	Price       int64    `xml:"Price"` // minor units
	Currency    string   `xml:"Currency"`
	Stock       int      `xml:"Stock"`
	Images      []string `xml:"Images>Image"`
}
