package repositories

import (
	"errors"

	"voxshop_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound      = errors.New("transaction not found")
	ErrTransactionItemsNotFound = errors.New("transaction items not found")
	ErrInvalidStatusTransition  = errors.New("invalid transaction status transition")
)

type TransactionRepository interface {
	// CreateWithItems writes the transaction row and its item rows inside
	// one database transaction.
	CreateWithItems(db *gorm.DB, transaction *models.Transaction, items []models.TransactionItem) error

	FindByID(db *gorm.DB, id string) (*models.Transaction, error)
	FindByIDWithItems(db *gorm.DB, id string) (*models.Transaction, error)
	FindByPaymentIntentID(db *gorm.DB, intentID string) (*models.Transaction, error)
	FindByOwnerWithItems(db *gorm.DB, ownerID string) ([]models.Transaction, error)
	FindItems(db *gorm.DB, transactionID string) ([]models.TransactionItem, error)

	UpdateDeliveryAddress(db *gorm.DB, id string, address models.DeliveryAddress) error
	UpdateReceiver(db *gorm.DB, id, firstName, lastName, phone, email string) error
	SetPaymentIntentID(db *gorm.DB, id, intentID string) error

	// UpdateStatus performs a guarded, forward-only status change.
	UpdateStatus(db *gorm.DB, id string, from, to models.TransactionStatus) error

	Delete(db *gorm.DB, id string) error
}

type TransactionRepositoryImpl struct{}

func NewTransactionRepository() TransactionRepository {
	return &TransactionRepositoryImpl{}
}

func (r *TransactionRepositoryImpl) CreateWithItems(db *gorm.DB, transaction *models.Transaction, items []models.TransactionItem) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].TransactionID = transaction.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		transaction.Items = items
		return nil
	})
}

func (r *TransactionRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := db.First(&transaction, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

func (r *TransactionRepositoryImpl) FindByIDWithItems(db *gorm.DB, id string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := db.Preload("Items").First(&transaction, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

func (r *TransactionRepositoryImpl) FindByPaymentIntentID(db *gorm.DB, intentID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := db.First(&transaction, "payment_intent_id = ?", intentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

func (r *TransactionRepositoryImpl) FindByOwnerWithItems(db *gorm.DB, ownerID string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := db.Preload("Items").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *TransactionRepositoryImpl) FindItems(db *gorm.DB, transactionID string) ([]models.TransactionItem, error) {
	var items []models.TransactionItem
	err := db.Where("transaction_id = ?", transactionID).Find(&items).Error
	return items, err
}

func (r *TransactionRepositoryImpl) UpdateDeliveryAddress(db *gorm.DB, id string, address models.DeliveryAddress) error {
	result := db.Model(&models.Transaction{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"delivery_house_number": address.HouseNumber,
			"delivery_street":       address.Street,
			"delivery_city":         address.City,
			"delivery_state":        address.State,
			"delivery_postcode":     address.Postcode,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *TransactionRepositoryImpl) UpdateReceiver(db *gorm.DB, id, firstName, lastName, phone, email string) error {
	result := db.Model(&models.Transaction{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"receiver_first_name": firstName,
			"receiver_last_name":  lastName,
			"receiver_phone":      phone,
			"receiver_email":      email,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *TransactionRepositoryImpl) SetPaymentIntentID(db *gorm.DB, id, intentID string) error {
	result := db.Model(&models.Transaction{}).
		Where("id = ?", id).
		Update("payment_intent_id", intentID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// UpdateStatus guards the monotonic lifecycle at the SQL level: the UPDATE
// only fires while the row is still in the expected `from` status, so a
// concurrent or repeated transition cannot move a terminal row.
func (r *TransactionRepositoryImpl) UpdateStatus(db *gorm.DB, id string, from, to models.TransactionStatus) error {
	if !from.CanTransition(to) {
		return ErrInvalidStatusTransition
	}
	result := db.Model(&models.Transaction{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Row missing or already past `from`.
		var count int64
		if err := db.Model(&models.Transaction{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrTransactionNotFound
		}
		return ErrInvalidStatusTransition
	}
	return nil
}

func (r *TransactionRepositoryImpl) Delete(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		// Explicit item delete keeps cascade behavior identical on
		// databases where the FK constraint was not created.
		if err := tx.Delete(&models.TransactionItem{}, "transaction_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Transaction{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTransactionNotFound
		}
		return nil
	})
}
