package services

import (
	"voxshop_backend/internal/models"
	"voxshop_backend/internal/repositories"
	"voxshop_backend/internal/services/dto"
	"voxshop_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type WishlistService interface {
	// AddItem is idempotent: adding a product already on the list returns
	// the existing row.
	AddItem(db *gorm.DB, ownerID string, req *dto.AddWishlistItemRequest) (*models.WishlistItem, error)
	List(db *gorm.DB, ownerID string) ([]models.WishlistItem, error)
	RemoveItem(db *gorm.DB, ownerID, itemID string) error
}

type wishlistService struct {
	wishlistRepo repositories.WishlistRepository
	productRepo  repositories.ProductRepository
}

func NewWishlistService(wishlistRepo repositories.WishlistRepository, productRepo repositories.ProductRepository) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

func (s *wishlistService) AddItem(db *gorm.DB, ownerID string, req *dto.AddWishlistItemRequest) (*models.WishlistItem, error) {
	product, err := s.productRepo.FindByID(db, req.ProductID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProductNotFound) {
			return nil, apperrors.NotFoundError("wishlist", "Product not found")
		}
		return nil, err
	}

	existing, err := s.wishlistRepo.FindByOwnerAndProduct(db, ownerID, req.ProductID)
	if err == nil {
		return existing, nil
	}
	if !apperrors.Is(err, repositories.ErrWishlistItemNotFound) {
		return nil, err
	}

	item := &models.WishlistItem{
		OwnerID:      ownerID,
		ProductID:    product.ID,
		ProductName:  product.Name,
		ProductImage: firstImage(product),
		ProductPrice: product.Price,
	}
	if err := s.wishlistRepo.Create(db, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *wishlistService) List(db *gorm.DB, ownerID string) ([]models.WishlistItem, error) {
	return s.wishlistRepo.FindByOwner(db, ownerID)
}

func (s *wishlistService) RemoveItem(db *gorm.DB, ownerID, itemID string) error {
	if err := s.wishlistRepo.Delete(db, ownerID, itemID); err != nil {
		if apperrors.Is(err, repositories.ErrWishlistItemNotFound) {
			return apperrors.NotFoundError("wishlist", "Wishlist item not found")
		}
		return err
	}
	return nil
}
