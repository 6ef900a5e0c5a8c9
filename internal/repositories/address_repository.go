package repositories

import (
	"errors"

	"voxshop_backend/internal/models"

	"gorm.io/gorm"
)

var ErrAddressNotFound = errors.New("address not found")

type AddressRepository interface {
	Create(db *gorm.DB, address *models.Address) error
	FindByID(db *gorm.DB, id string) (*models.Address, error)
	FindByOwner(db *gorm.DB, ownerID string) ([]models.Address, error)
	Delete(db *gorm.DB, ownerID, id string) error
}

type AddressRepositoryImpl struct{}

func NewAddressRepository() AddressRepository {
	return &AddressRepositoryImpl{}
}

func (r *AddressRepositoryImpl) Create(db *gorm.DB, address *models.Address) error {
	if address.IsDefault {
		// Only one default per owner.
		if err := db.Model(&models.Address{}).
			Where("owner_id = ?", address.OwnerID).
			Update("is_default", false).Error; err != nil {
			return err
		}
	}
	return db.Create(address).Error
}

func (r *AddressRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Address, error) {
	var address models.Address
	if err := db.First(&address, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	return &address, nil
}

func (r *AddressRepositoryImpl) FindByOwner(db *gorm.DB, ownerID string) ([]models.Address, error) {
	var addresses []models.Address
	err := db.Where("owner_id = ?", ownerID).
		Order("is_default DESC, created_at DESC").
		Find(&addresses).Error
	return addresses, err
}

func (r *AddressRepositoryImpl) Delete(db *gorm.DB, ownerID, id string) error {
	result := db.Delete(&models.Address{}, "id = ? AND owner_id = ?", id, ownerID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAddressNotFound
	}
	return nil
}
