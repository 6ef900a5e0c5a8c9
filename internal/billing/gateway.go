package billing

import "context"

// Intent is the processor-side object representing an attempted charge.
// The client secret is handed to the browser for confirmation.
type Intent struct {
	ID           string
	ClientSecret string
}

// IntentParams describes the charge to create. Metadata travels to the
// processor for reconciliation (transaction id, owner id, serialized
// delivery address).
type IntentParams struct {
	Amount   int64 // minor currency units, > 0
	Currency string
	Metadata map[string]string
}

// PaymentGateway abstracts the payment processor so services and tests do
// not touch the SDK directly.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, params IntentParams) (*Intent, error)
	CancelIntent(ctx context.Context, intentID string) error
}
