// Package checkout models the checkout flow as an explicit state machine.
// One Session exists per checkout attempt and walks
// uninitiated -> addressing -> paying -> submitted; cancelling any
// non-submitted session resets it to uninitiated. The payment step stays
// locked until the transaction carries both a delivery address and a
// receiver email.
package checkout

import (
	"errors"

	"voxshop_backend/internal/models"
)

type Step string

const (
	StepUninitiated Step = "uninitiated"
	StepAddressing  Step = "addressing"
	StepPaying      Step = "paying"
	StepSubmitted   Step = "submitted"
)

var (
	ErrInvalidStep   = errors.New("invalid checkout step transition")
	ErrPaymentLocked = errors.New("payment step is locked")
)

// Session is the checkout flow controller state.
type Session struct {
	Step Step `json:"step"`
}

func NewSession() *Session {
	return &Session{Step: StepUninitiated}
}

// Initiated reports whether a checkout is in progress.
func (s *Session) Initiated() bool {
	return s.Step != StepUninitiated
}

// Begin starts a checkout attempt.
func (s *Session) Begin() error {
	if s.Step != StepUninitiated {
		return ErrInvalidStep
	}
	s.Step = StepAddressing
	return nil
}

// Proceed moves from address capture to payment. The transaction must pass
// the payment gate.
func (s *Session) Proceed(tx *models.Transaction) error {
	if s.Step != StepAddressing {
		return ErrInvalidStep
	}
	if missing := MissingPaymentFields(tx); len(missing) > 0 {
		return ErrPaymentLocked
	}
	s.Step = StepPaying
	return nil
}

// Submit records a confirmed payment; the session leaves this process's
// lifetime (the success page owns the rest).
func (s *Session) Submit() error {
	if s.Step != StepPaying {
		return ErrInvalidStep
	}
	s.Step = StepSubmitted
	return nil
}

// Cancel aborts the checkout. Submitted sessions are final.
func (s *Session) Cancel() error {
	if s.Step == StepSubmitted {
		return ErrInvalidStep
	}
	s.Step = StepUninitiated
	return nil
}

// MissingPaymentFields lists what still locks the payment step. The caller
// shows this list verbatim.
func MissingPaymentFields(tx *models.Transaction) []string {
	var missing []string
	if tx == nil {
		return []string{"transaction"}
	}
	if tx.DeliveryAddress.Empty() {
		missing = append(missing, "delivery address")
	}
	if tx.ReceiverEmail == "" {
		missing = append(missing, "receiver email")
	}
	return missing
}

// SessionFor replays a persisted transaction through a fresh session.
// This is the server-side truth behind the route gating: cancelled or
// missing transactions map to uninitiated, which sends the client home.
func SessionFor(tx *models.Transaction) *Session {
	session := NewSession()
	if tx == nil {
		return session
	}
	switch tx.Status {
	case models.TransactionStatusCancelled, models.TransactionStatusFailed:
		_ = session.Cancel()
		return session
	}
	_ = session.Begin()
	if err := session.Proceed(tx); err != nil {
		return session
	}
	if tx.Status == models.TransactionStatusSucceeded {
		_ = session.Submit()
	}
	return session
}

// StepFor derives the current step from a persisted transaction.
func StepFor(tx *models.Transaction) Step {
	return SessionFor(tx).Step
}
