package services

import (
	"context"
	"strings"

	"voxshop_backend/internal/mailer"
	"voxshop_backend/internal/repositories"
	"voxshop_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// MailSender is the slice of the graph mail client the notification path
// needs; tests substitute it.
type MailSender interface {
	SendMail(ctx context.Context, to, subject, htmlBody string) error
}

type NotificationService interface {
	// SendPurchaseSuccess renders and sends the order-confirmation email
	// for one transaction.
	SendPurchaseSuccess(ctx context.Context, db *gorm.DB, transactionID string) error
}

type notificationService struct {
	transactionRepo repositories.TransactionRepository
	productRepo     repositories.ProductRepository
	mail            MailSender
	storeName       string
	currency        string
}

func NewNotificationService(
	transactionRepo repositories.TransactionRepository,
	productRepo repositories.ProductRepository,
	mail MailSender,
	storeName, currency string,
) NotificationService {
	return &notificationService{
		transactionRepo: transactionRepo,
		productRepo:     productRepo,
		mail:            mail,
		storeName:       storeName,
		currency:        currency,
	}
}

func (s *notificationService) SendPurchaseSuccess(ctx context.Context, db *gorm.DB, transactionID string) error {
	transaction, err := s.transactionRepo.FindByIDWithItems(db, transactionID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTransactionNotFound) {
			return apperrors.NotFoundError("mailer", "Transaction not found")
		}
		return err
	}
	if transaction.ReceiverEmail == "" {
		return apperrors.NewBadRequestError("Transaction has no receiver email")
	}

	items := make([]mailer.PurchaseEmailItem, 0, len(transaction.Items))
	for _, item := range transaction.Items {
		name := item.ProductID
		if product, perr := s.productRepo.FindByID(db, item.ProductID); perr == nil {
			name = product.Name
		}
		items = append(items, mailer.PurchaseEmailItem{
			Name:      name,
			Quantity:  item.Quantity,
			Price:     item.PriceAtTime,
			LineTotal: item.PriceAtTime * int64(item.Quantity),
		})
	}

	address := transaction.DeliveryAddress
	addressLines := []string{
		strings.TrimSpace(address.HouseNumber + " " + address.Street),
		strings.TrimSpace(address.City + " " + address.Postcode),
	}
	if address.State != "" {
		addressLines = append(addressLines, address.State)
	}

	html, err := mailer.RenderPurchaseEmail(mailer.PurchaseEmailData{
		StoreName:    s.storeName,
		OrderID:      transaction.ID,
		OrderDate:    transaction.CreatedAt.Format("2 January 2006"),
		Items:        items,
		Total:        transaction.Amount,
		Currency:     s.currency,
		ReceiverName: strings.TrimSpace(transaction.ReceiverFirstName + " " + transaction.ReceiverLastName),
		Email:        transaction.ReceiverEmail,
		AddressLines: addressLines,
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	subject := s.storeName + " - your order " + transaction.ID
	if err := s.mail.SendMail(ctx, transaction.ReceiverEmail, subject, html); err != nil {
		return apperrors.ExternalError("mailer", err.Error(), err)
	}
	return nil
}
