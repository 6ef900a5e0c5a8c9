package dto

// TransactionItemInput is one (product, quantity, price-at-time) tuple of a
// checkout attempt. PriceAtTime is the catalog price the client saw, in
// minor currency units.
type TransactionItemInput struct {
	ProductID   string `json:"product_id" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,min=1"`
	PriceAtTime int64  `json:"price_at_time" validate:"required,gt=0"`
}

type CreateTransactionRequest struct {
	// Amount is optional; when present it must equal the item sum.
	Amount *int64                 `json:"amount,omitempty"`
	Items  []TransactionItemInput `json:"items" validate:"dive"`
}

// SetDeliveryAddressRequest either references a saved address or carries a
// new one. The inline fields are required only when no AddressID is given.
type SetDeliveryAddressRequest struct {
	AddressID   string `json:"address_id,omitempty"`
	HouseNumber string `json:"house_number" validate:"required_without=AddressID"`
	Street      string `json:"street" validate:"required_without=AddressID"`
	City        string `json:"city" validate:"required_without=AddressID"`
	State       string `json:"state"`
	Postcode    string `json:"postcode" validate:"required_without=AddressID"`
}

type SetReceiverRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Phone     string `json:"phone" validate:"required,phone"`
	Email     string `json:"email" validate:"required,email"`
}

// Wire contract of the payment-intent bridge: field names are fixed.
type CreatePaymentIntentRequest struct {
	Amount        int64  `json:"amount" validate:"required,gt=0"`
	TransactionID string `json:"transactionId" validate:"required"`
}

type CreatePaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type CancelPaymentIntentRequest struct {
	ID string `json:"id" validate:"required"` // transaction id
}

type SubmitOrderRequest struct {
	TransactionID string `json:"transaction_id" validate:"required"`
}

type PurchaseSuccessRequest struct {
	TransactionID string `json:"transaction_id" validate:"required"`
}

// MarkSucceededRequest carries the intent id the processor's redirect put
// into the success page's query string.
type MarkSucceededRequest struct {
	PaymentIntent string `json:"payment_intent" validate:"required"`
}

// CheckoutSessionResponse is the derived flow state for one transaction.
type CheckoutSessionResponse struct {
	TransactionID string   `json:"transaction_id"`
	Step          string   `json:"step"`
	Initiated     bool     `json:"initiated"`
	MissingFields []string `json:"missing_fields,omitempty"`
}
