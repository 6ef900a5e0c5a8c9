package models

// DeliveryAddress is embedded into Transaction; it is captured separately
// from receiver details and either may arrive first.
type DeliveryAddress struct {
	HouseNumber string `json:"house_number"`
	Street      string `json:"street"`
	City        string `json:"city"`
	State       string `json:"state"`
	Postcode    string `json:"postcode"`
}

// Empty reports whether no address has been captured yet.
func (a DeliveryAddress) Empty() bool {
	return a.HouseNumber == "" && a.Street == "" && a.City == "" && a.Postcode == ""
}

// Transaction is the storefront's record of one checkout attempt. Amount is
// fixed at creation (the sum over its items) and Status only moves forward
// through pending -> succeeded|failed|cancelled.
type Transaction struct {
	BaseModel
	OwnerID         string            `gorm:"not null;index" json:"owner_id"`
	Amount          int64             `gorm:"not null" json:"amount"` // minor currency units
	Status          TransactionStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentIntentID *string           `gorm:"uniqueIndex" json:"payment_intent_id,omitempty"`

	DeliveryAddress DeliveryAddress `gorm:"embedded;embeddedPrefix:delivery_" json:"delivery_address"`

	ReceiverFirstName string `json:"receiver_first_name"`
	ReceiverLastName  string `json:"receiver_last_name"`
	ReceiverPhone     string `json:"receiver_phone"`
	ReceiverEmail     string `json:"receiver_email"`

	Items []TransactionItem `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// TransactionItem is one order line. PriceAtTime is captured at creation to
// decouple the order from later catalog price changes; rows are never
// mutated afterwards.
type TransactionItem struct {
	BaseModel
	TransactionID string `gorm:"not null;index" json:"transaction_id"`
	ProductID     string `gorm:"not null;index" json:"product_id"`
	Quantity      int    `gorm:"not null" json:"quantity"`
	PriceAtTime   int64  `gorm:"not null" json:"price_at_time"` // minor units
}
