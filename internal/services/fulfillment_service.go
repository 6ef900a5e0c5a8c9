package services

import (
	"context"
	"errors"
	"strings"

	"voxshop_backend/internal/logger"
	"voxshop_backend/internal/repositories"
	"voxshop_backend/internal/supplier"
	"voxshop_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// OrderSubmitter is the slice of the supplier client the fulfillment path
// needs; tests substitute it.
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, order *supplier.Order) (string, error)
}

type FulfillmentService interface {
	// Submit forwards the transaction's line items to the supplier's
	// order-intake API and returns the supplier's raw response body.
	Submit(ctx context.Context, db *gorm.DB, transactionID string) (string, error)
}

type fulfillmentService struct {
	transactionRepo repositories.TransactionRepository
	productRepo     repositories.ProductRepository
	client          OrderSubmitter
}

func NewFulfillmentService(
	transactionRepo repositories.TransactionRepository,
	productRepo repositories.ProductRepository,
	client OrderSubmitter,
) FulfillmentService {
	return &fulfillmentService{
		transactionRepo: transactionRepo,
		productRepo:     productRepo,
		client:          client,
	}
}

func (s *fulfillmentService) Submit(ctx context.Context, db *gorm.DB, transactionID string) (string, error) {
	transaction, err := s.transactionRepo.FindByID(db, transactionID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTransactionNotFound) {
			return "", apperrors.NotFoundError("supplier", "Transaction not found")
		}
		return "", err
	}

	items, err := s.transactionRepo.FindItems(db, transactionID)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", apperrors.NotFoundError("supplier", "Transaction items not found")
	}

	lines := make([]supplier.OrderLine, 0, len(items))
	for _, item := range items {
		// The supplier keys lines by SKU; fall back to our product id when
		// the catalog row has gone away.
		sku := item.ProductID
		if product, perr := s.productRepo.FindByID(db, item.ProductID); perr == nil {
			sku = product.SKU
		}
		lines = append(lines, supplier.OrderLine{
			SKU:      sku,
			Quantity: item.Quantity,
		})
	}

	order := &supplier.Order{
		Reference: transaction.ID,
		Consignee: supplier.Consignee{
			Name:        strings.TrimSpace(transaction.ReceiverFirstName + " " + transaction.ReceiverLastName),
			HouseNumber: transaction.DeliveryAddress.HouseNumber,
			Street:      transaction.DeliveryAddress.Street,
			City:        transaction.DeliveryAddress.City,
			State:       transaction.DeliveryAddress.State,
			Postcode:    transaction.DeliveryAddress.Postcode,
			Phone:       transaction.ReceiverPhone,
		},
		Lines: lines,
	}

	body, err := s.client.SubmitOrder(ctx, order)
	if err != nil {
		// A paid order that fails here stays unsubmitted; log with the
		// transaction id so ops can resubmit.
		logger.CtxWithError(ctx, "supplier order submission failed", err, "transaction_id", transaction.ID)

		var httpErr *supplier.HTTPError
		if errors.As(err, &httpErr) {
			return "", apperrors.New(apperrors.CodeExternalServiceError, "supplier",
				httpErr.Body, httpErr.StatusCode)
		}
		return "", apperrors.InternalError(err)
	}
	return body, nil
}
