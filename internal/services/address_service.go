package services

import (
	"voxshop_backend/internal/models"
	"voxshop_backend/internal/repositories"
	"voxshop_backend/internal/services/dto"
	"voxshop_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AddressService interface {
	Create(db *gorm.DB, ownerID string, req *dto.CreateAddressRequest) (*models.Address, error)
	List(db *gorm.DB, ownerID string) ([]models.Address, error)
	Delete(db *gorm.DB, ownerID, addressID string) error
}

type addressService struct {
	addressRepo repositories.AddressRepository
}

func NewAddressService(addressRepo repositories.AddressRepository) AddressService {
	return &addressService{addressRepo: addressRepo}
}

func (s *addressService) Create(db *gorm.DB, ownerID string, req *dto.CreateAddressRequest) (*models.Address, error) {
	address := &models.Address{
		OwnerID:     ownerID,
		HouseNumber: req.HouseNumber,
		Street:      req.Street,
		City:        req.City,
		State:       req.State,
		Postcode:    req.Postcode,
		IsDefault:   req.IsDefault,
	}
	if err := s.addressRepo.Create(db, address); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return address, nil
}

func (s *addressService) List(db *gorm.DB, ownerID string) ([]models.Address, error) {
	return s.addressRepo.FindByOwner(db, ownerID)
}

func (s *addressService) Delete(db *gorm.DB, ownerID, addressID string) error {
	if err := s.addressRepo.Delete(db, ownerID, addressID); err != nil {
		if apperrors.Is(err, repositories.ErrAddressNotFound) {
			return apperrors.NotFoundError("address", "Address not found")
		}
		return err
	}
	return nil
}
