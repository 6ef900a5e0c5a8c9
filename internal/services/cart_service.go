package services

import (
	"encoding/json"

	"voxshop_backend/internal/models"
	"voxshop_backend/internal/repositories"
	"voxshop_backend/internal/services/dto"
	"voxshop_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type CartService interface {
	// AddItem upserts: a second add of the same product increments the
	// existing row's quantity instead of inserting.
	AddItem(db *gorm.DB, ownerID string, req *dto.AddCartItemRequest) (*models.CartItem, error)
	GetCart(db *gorm.DB, ownerID string) ([]models.CartItem, error)
	UpdateQuantity(db *gorm.DB, ownerID, itemID string, req *dto.UpdateCartItemRequest) error
	RemoveItem(db *gorm.DB, ownerID, itemID string) error
	Clear(db *gorm.DB, ownerID string) error
}

type cartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *cartService) AddItem(db *gorm.DB, ownerID string, req *dto.AddCartItemRequest) (*models.CartItem, error) {
	product, err := s.productRepo.FindByID(db, req.ProductID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProductNotFound) {
			return nil, apperrors.NotFoundError("cart", "Product not found")
		}
		return nil, err
	}

	existing, err := s.cartRepo.FindByOwnerAndProduct(db, ownerID, req.ProductID)
	if err == nil {
		newQty := existing.Quantity + req.Quantity
		if err := s.cartRepo.UpdateQuantity(db, ownerID, existing.ID, newQty); err != nil {
			return nil, err
		}
		existing.Quantity = newQty
		return existing, nil
	}
	if !apperrors.Is(err, repositories.ErrCartItemNotFound) {
		return nil, err
	}

	item := &models.CartItem{
		OwnerID:      ownerID,
		ProductID:    product.ID,
		Quantity:     req.Quantity,
		ProductName:  product.Name,
		ProductImage: firstImage(product),
		ProductPrice: product.Price,
	}
	if err := s.cartRepo.Create(db, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *cartService) GetCart(db *gorm.DB, ownerID string) ([]models.CartItem, error) {
	return s.cartRepo.FindByOwner(db, ownerID)
}

func (s *cartService) UpdateQuantity(db *gorm.DB, ownerID, itemID string, req *dto.UpdateCartItemRequest) error {
	if err := s.cartRepo.UpdateQuantity(db, ownerID, itemID, req.Quantity); err != nil {
		if apperrors.Is(err, repositories.ErrCartItemNotFound) {
			return apperrors.NotFoundError("cart", "Cart item not found")
		}
		return err
	}
	return nil
}

func (s *cartService) RemoveItem(db *gorm.DB, ownerID, itemID string) error {
	if err := s.cartRepo.Delete(db, ownerID, itemID); err != nil {
		if apperrors.Is(err, repositories.ErrCartItemNotFound) {
			return apperrors.NotFoundError("cart", "Cart item not found")
		}
		return err
	}
	return nil
}

func (s *cartService) Clear(db *gorm.DB, ownerID string) error {
	return s.cartRepo.ClearOwner(db, ownerID)
}

// firstImage pulls the first entry of the product's image list for the cart
// row snapshot.
func firstImage(product *models.Product) string {
	if len(product.Images) == 0 {
		return ""
	}
	var images []string
	if err := json.Unmarshal(product.Images, &images); err != nil || len(images) == 0 {
		return ""
	}
	return images[0]
}
