package services

import (
	"voxshop_backend/internal/checkout"
	"voxshop_backend/internal/models"
	"voxshop_backend/internal/repositories"
	"voxshop_backend/internal/services/dto"
	"voxshop_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type CheckoutService interface {
	// Create persists the transaction row plus one item row per tuple in a
	// single database transaction. The amount is the item sum; a
	// caller-supplied amount that disagrees is rejected.
	Create(db *gorm.DB, ownerID string, req *dto.CreateTransactionRequest) (*models.Transaction, error)

	SetDeliveryAddress(db *gorm.DB, ownerID, transactionID string, req *dto.SetDeliveryAddressRequest) error
	SetReceiver(db *gorm.DB, ownerID, transactionID string, req *dto.SetReceiverRequest) error

	GetByID(db *gorm.DB, ownerID, transactionID string) (*models.Transaction, error)
	History(db *gorm.DB, ownerID string) ([]models.Transaction, error)
	Session(db *gorm.DB, ownerID, transactionID string) (*dto.CheckoutSessionResponse, error)

	// MarkSucceeded resolves the transaction via the intent id the success
	// page received in its redirect query parameter.
	MarkSucceeded(db *gorm.DB, paymentIntentID string) (*models.Transaction, error)

	// Delete is administrative cleanup only; items cascade.
	Delete(db *gorm.DB, transactionID string) error
}

type checkoutService struct {
	transactionRepo repositories.TransactionRepository
	addressRepo     repositories.AddressRepository
	cartRepo        repositories.CartRepository
}

func NewCheckoutService(
	transactionRepo repositories.TransactionRepository,
	addressRepo repositories.AddressRepository,
	cartRepo repositories.CartRepository,
) CheckoutService {
	return &checkoutService{
		transactionRepo: transactionRepo,
		addressRepo:     addressRepo,
		cartRepo:        cartRepo,
	}
}

func (s *checkoutService) Create(db *gorm.DB, ownerID string, req *dto.CreateTransactionRequest) (*models.Transaction, error) {
	var amount int64
	items := make([]models.TransactionItem, 0, len(req.Items))
	for _, in := range req.Items {
		amount += in.PriceAtTime * int64(in.Quantity)
		items = append(items, models.TransactionItem{
			ProductID:   in.ProductID,
			Quantity:    in.Quantity,
			PriceAtTime: in.PriceAtTime,
		})
	}

	if req.Amount != nil && *req.Amount != amount {
		return nil, apperrors.NewBadRequestError("Transaction amount does not match the item total")
	}

	transaction := &models.Transaction{
		OwnerID: ownerID,
		Amount:  amount,
		Status:  models.TransactionStatusPending,
	}

	if err := s.transactionRepo.CreateWithItems(db, transaction, items); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "checkout", "Failed to create transaction", 500)
	}
	return transaction, nil
}

func (s *checkoutService) SetDeliveryAddress(db *gorm.DB, ownerID, transactionID string, req *dto.SetDeliveryAddressRequest) error {
	transaction, err := s.ownedPendingTransaction(db, ownerID, transactionID)
	if err != nil {
		return err
	}

	address := models.DeliveryAddress{
		HouseNumber: req.HouseNumber,
		Street:      req.Street,
		City:        req.City,
		State:       req.State,
		Postcode:    req.Postcode,
	}

	if req.AddressID != "" {
		saved, err := s.addressRepo.FindByID(db, req.AddressID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrAddressNotFound) {
				return apperrors.NotFoundError("checkout", "Address not found")
			}
			return err
		}
		if saved.OwnerID != ownerID {
			return apperrors.NewForbiddenError("Address belongs to another user")
		}
		address = models.DeliveryAddress{
			HouseNumber: saved.HouseNumber,
			Street:      saved.Street,
			City:        saved.City,
			State:       saved.State,
			Postcode:    saved.Postcode,
		}
	}

	return s.transactionRepo.UpdateDeliveryAddress(db, transaction.ID, address)
}

func (s *checkoutService) SetReceiver(db *gorm.DB, ownerID, transactionID string, req *dto.SetReceiverRequest) error {
	transaction, err := s.ownedPendingTransaction(db, ownerID, transactionID)
	if err != nil {
		return err
	}
	return s.transactionRepo.UpdateReceiver(db, transaction.ID, req.FirstName, req.LastName, req.Phone, req.Email)
}

func (s *checkoutService) GetByID(db *gorm.DB, ownerID, transactionID string) (*models.Transaction, error) {
	transaction, err := s.transactionRepo.FindByIDWithItems(db, transactionID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, apperrors.NotFoundError("checkout", "Transaction not found")
		}
		return nil, err
	}
	if transaction.OwnerID != ownerID {
		return nil, apperrors.NewForbiddenError("Transaction belongs to another user")
	}
	return transaction, nil
}

func (s *checkoutService) History(db *gorm.DB, ownerID string) ([]models.Transaction, error) {
	return s.transactionRepo.FindByOwnerWithItems(db, ownerID)
}

func (s *checkoutService) Session(db *gorm.DB, ownerID, transactionID string) (*dto.CheckoutSessionResponse, error) {
	transaction, err := s.GetByID(db, ownerID, transactionID)
	if err != nil {
		return nil, err
	}
	session := checkout.SessionFor(transaction)
	return &dto.CheckoutSessionResponse{
		TransactionID: transaction.ID,
		Step:          string(session.Step),
		Initiated:     session.Initiated(),
		MissingFields: checkout.MissingPaymentFields(transaction),
	}, nil
}

func (s *checkoutService) MarkSucceeded(db *gorm.DB, paymentIntentID string) (*models.Transaction, error) {
	transaction, err := s.transactionRepo.FindByPaymentIntentID(db, paymentIntentID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, apperrors.NotFoundError("checkout", "Transaction not found")
		}
		return nil, err
	}

	// Arriving at the success page twice must not fail the order view.
	if transaction.Status == models.TransactionStatusSucceeded {
		return transaction, nil
	}

	if err := s.transactionRepo.UpdateStatus(db, transaction.ID, transaction.Status, models.TransactionStatusSucceeded); err != nil {
		if apperrors.Is(err, repositories.ErrInvalidStatusTransition) {
			return nil, apperrors.ConflictError("checkout", "Transaction is already resolved")
		}
		return nil, err
	}
	transaction.Status = models.TransactionStatusSucceeded

	// Checkout is done; the cart served its purpose.
	if err := s.cartRepo.ClearOwner(db, transaction.OwnerID); err != nil {
		return nil, err
	}
	return transaction, nil
}

func (s *checkoutService) Delete(db *gorm.DB, transactionID string) error {
	if err := s.transactionRepo.Delete(db, transactionID); err != nil {
		if apperrors.Is(err, repositories.ErrTransactionNotFound) {
			return apperrors.NotFoundError("checkout", "Transaction not found")
		}
		return err
	}
	return nil
}

// ownedPendingTransaction loads the transaction and verifies ownership and
// that it is still mutable.
func (s *checkoutService) ownedPendingTransaction(db *gorm.DB, ownerID, transactionID string) (*models.Transaction, error) {
	transaction, err := s.transactionRepo.FindByID(db, transactionID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, apperrors.NotFoundError("checkout", "Transaction not found")
		}
		return nil, err
	}
	if transaction.OwnerID != ownerID {
		return nil, apperrors.NewForbiddenError("Transaction belongs to another user")
	}
	if transaction.Status.Terminal() {
		return nil, apperrors.ConflictError("checkout", "Transaction is already resolved")
	}
	return transaction, nil
}
