package models

type UserRole string
type TransactionStatus string

const (
	UserRoleCustomer UserRole = "customer"
	UserRoleAdmin    UserRole = "admin"

	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusSucceeded TransactionStatus = "succeeded"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// CanTransition reports whether a status change is allowed. Transitions only
// move forward: pending may become succeeded, failed or cancelled; the
// terminal states never change again.
func (s TransactionStatus) CanTransition(to TransactionStatus) bool {
	if s == to {
		return false
	}
	switch s {
	case TransactionStatusPending:
		return to == TransactionStatusSucceeded ||
			to == TransactionStatusFailed ||
			to == TransactionStatusCancelled
	default:
		return false
	}
}

// Terminal reports whether no further transition is possible.
func (s TransactionStatus) Terminal() bool {
	return s != TransactionStatusPending
}
