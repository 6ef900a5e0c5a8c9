package repositories

import (
	"errors"

	"voxshop_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCartItemNotFound = errors.New("cart item not found")

type CartRepository interface {
	FindByOwner(db *gorm.DB, ownerID string) ([]models.CartItem, error)
	FindByOwnerAndProduct(db *gorm.DB, ownerID, productID string) (*models.CartItem, error)
	Create(db *gorm.DB, item *models.CartItem) error
	UpdateQuantity(db *gorm.DB, ownerID, itemID string, quantity int) error
	Delete(db *gorm.DB, ownerID, itemID string) error
	ClearOwner(db *gorm.DB, ownerID string) error
}

type CartRepositoryImpl struct{}

func NewCartRepository() CartRepository {
	return &CartRepositoryImpl{}
}

func (r *CartRepositoryImpl) FindByOwner(db *gorm.DB, ownerID string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := db.Where("owner_id = ?", ownerID).Order("created_at ASC").Find(&items).Error
	return items, err
}

func (r *CartRepositoryImpl) FindByOwnerAndProduct(db *gorm.DB, ownerID, productID string) (*models.CartItem, error) {
	var item models.CartItem
	err := db.First(&item, "owner_id = ? AND product_id = ?", ownerID, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *CartRepositoryImpl) Create(db *gorm.DB, item *models.CartItem) error {
	return db.Create(item).Error
}

func (r *CartRepositoryImpl) UpdateQuantity(db *gorm.DB, ownerID, itemID string, quantity int) error {
	result := db.Model(&models.CartItem{}).
		Where("id = ? AND owner_id = ?", itemID, ownerID).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *CartRepositoryImpl) Delete(db *gorm.DB, ownerID, itemID string) error {
	result := db.Delete(&models.CartItem{}, "id = ? AND owner_id = ?", itemID, ownerID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *CartRepositoryImpl) ClearOwner(db *gorm.DB, ownerID string) error {
	return db.Delete(&models.CartItem{}, "owner_id = ?", ownerID).Error
}
