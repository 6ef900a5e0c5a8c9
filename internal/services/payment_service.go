package services

import (
	"context"
	"encoding/json"

	"voxshop_backend/internal/billing"
	"voxshop_backend/internal/checkout"
	"voxshop_backend/internal/models"
	"voxshop_backend/internal/repositories"
	"voxshop_backend/internal/services/dto"
	"voxshop_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type PaymentService interface {
	// CreateIntent creates a processor payment intent for the transaction
	// and returns its client secret. Locked until the transaction carries a
	// delivery address and a receiver email.
	CreateIntent(ctx context.Context, db *gorm.DB, req *dto.CreatePaymentIntentRequest) (string, error)

	// CancelIntent cancels by the intent id stored on the transaction and
	// marks the transaction cancelled.
	CancelIntent(ctx context.Context, db *gorm.DB, transactionID string) error
}

type paymentService struct {
	transactionRepo repositories.TransactionRepository
	gateway         billing.PaymentGateway
	currency        string
}

func NewPaymentService(transactionRepo repositories.TransactionRepository, gateway billing.PaymentGateway, currency string) PaymentService {
	return &paymentService{
		transactionRepo: transactionRepo,
		gateway:         gateway,
		currency:        currency,
	}
}

func (s *paymentService) CreateIntent(ctx context.Context, db *gorm.DB, req *dto.CreatePaymentIntentRequest) (string, error) {
	if req.Amount <= 0 {
		return "", apperrors.NewBadRequestError("Amount must be greater than zero")
	}

	transaction, err := s.transactionRepo.FindByID(db, req.TransactionID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTransactionNotFound) {
			return "", apperrors.NotFoundError("billing", "Transaction not found")
		}
		return "", err
	}

	if transaction.Status.Terminal() {
		return "", apperrors.ConflictError("billing", "Transaction is already resolved")
	}
	if req.Amount != transaction.Amount {
		return "", apperrors.NewBadRequestError("Amount does not match the transaction")
	}

	if missing := checkout.MissingPaymentFields(transaction); len(missing) > 0 {
		return "", apperrors.New(apperrors.CodeInvalidOperation, "billing",
			"Payment step is locked", 400).WithDetails(map[string]interface{}{"missing_fields": missing})
	}

	addressJSON, err := json.Marshal(transaction.DeliveryAddress)
	if err != nil {
		return "", err
	}

	intent, err := s.gateway.CreateIntent(ctx, billing.IntentParams{
		Amount:   req.Amount,
		Currency: s.currency,
		Metadata: map[string]string{
			"transaction_id":   transaction.ID,
			"owner_id":         transaction.OwnerID,
			"delivery_address": string(addressJSON),
		},
	})
	if err != nil {
		return "", apperrors.ExternalError("billing", err.Error(), err)
	}

	if err := s.transactionRepo.SetPaymentIntentID(db, transaction.ID, intent.ID); err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}

func (s *paymentService) CancelIntent(ctx context.Context, db *gorm.DB, transactionID string) error {
	transaction, err := s.transactionRepo.FindByID(db, transactionID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTransactionNotFound) {
			return apperrors.NotFoundError("billing", "Transaction not found")
		}
		return err
	}

	// Cancellation goes through the intent id saved on the transaction,
	// never the transaction's own id.
	if transaction.PaymentIntentID == nil || *transaction.PaymentIntentID == "" {
		return apperrors.ConflictError("billing", "Transaction has no payment intent to cancel")
	}

	if err := s.gateway.CancelIntent(ctx, *transaction.PaymentIntentID); err != nil {
		return apperrors.ExternalError("billing", err.Error(), err)
	}

	if err := s.transactionRepo.UpdateStatus(db, transaction.ID, transaction.Status, models.TransactionStatusCancelled); err != nil {
		if apperrors.Is(err, repositories.ErrInvalidStatusTransition) {
			return apperrors.ConflictError("billing", "Transaction is already resolved")
		}
		return err
	}
	return nil
}
