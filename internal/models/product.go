package models

import "gorm.io/datatypes"

// Product mirrors the supplier catalog. Rows are written by the nightly sync
// worker and read-mostly everywhere else; the checkout chain only consumes
// id, price and availability.
type Product struct {
	BaseModel
	SKU         string         `gorm:"not null;uniqueIndex" json:"sku"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	Price       int64          `gorm:"not null" json:"price"` // minor currency units
	Currency    string         `gorm:"type:varchar(3);not null" json:"currency"`
	InStock     bool           `gorm:"default:true" json:"in_stock"`
	StockQty    int            `json:"stock_qty"`
	Attributes  datatypes.JSON `json:"attributes,omitempty"` // codec support, line count, PoE...
	Images      datatypes.JSON `json:"images,omitempty"`
}
