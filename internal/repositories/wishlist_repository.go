package repositories

import (
	"errors"

	"voxshop_backend/internal/models"

	"gorm.io/gorm"
)

var ErrWishlistItemNotFound = errors.New("wishlist item not found")

type WishlistRepository interface {
	FindByOwner(db *gorm.DB, ownerID string) ([]models.WishlistItem, error)
	FindByOwnerAndProduct(db *gorm.DB, ownerID, productID string) (*models.WishlistItem, error)
	Create(db *gorm.DB, item *models.WishlistItem) error
	Delete(db *gorm.DB, ownerID, itemID string) error
}

type WishlistRepositoryImpl struct{}

func NewWishlistRepository() WishlistRepository {
	return &WishlistRepositoryImpl{}
}

func (r *WishlistRepositoryImpl) FindByOwner(db *gorm.DB, ownerID string) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := db.Where("owner_id = ?", ownerID).Order("created_at ASC").Find(&items).Error
	return items, err
}

func (r *WishlistRepositoryImpl) FindByOwnerAndProduct(db *gorm.DB, ownerID, productID string) (*models.WishlistItem, error) {
	var item models.WishlistItem
	err := db.First(&item, "owner_id = ? AND product_id = ?", ownerID, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWishlistItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *WishlistRepositoryImpl) Create(db *gorm.DB, item *models.WishlistItem) error {
	return db.Create(item).Error
}

func (r *WishlistRepositoryImpl) Delete(db *gorm.DB, ownerID, itemID string) error {
	result := db.Delete(&models.WishlistItem{}, "id = ? AND owner_id = ?", itemID, ownerID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWishlistItemNotFound
	}
	return nil
}
