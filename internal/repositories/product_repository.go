package repositories

import (
	"errors"

	"voxshop_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository interface {
	FindAll(db *gorm.DB, limit, offset int) ([]models.Product, error)
	FindByID(db *gorm.DB, id string) (*models.Product, error)
	FindBySKU(db *gorm.DB, sku string) (*models.Product, error)
	UpsertBySKU(db *gorm.DB, product *models.Product) error
	Count(db *gorm.DB) (int64, error)
}

type ProductRepositoryImpl struct{}

func NewProductRepository() ProductRepository {
	return &ProductRepositoryImpl{}
}

func (r *ProductRepositoryImpl) FindAll(db *gorm.DB, limit, offset int) ([]models.Product, error) {
	var products []models.Product
	err := db.Order("name ASC").Limit(limit).Offset(offset).Find(&products).Error
	return products, err
}

func (r *ProductRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Product, error) {
	var product models.Product
	if err := db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepositoryImpl) FindBySKU(db *gorm.DB, sku string) (*models.Product, error) {
	var product models.Product
	if err := db.First(&product, "sku = ?", sku).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// UpsertBySKU inserts the product or refreshes the mutable catalog columns
// when the SKU already exists. Used by the nightly supplier sync.
func (r *ProductRepositoryImpl) UpsertBySKU(db *gorm.DB, product *models.Product) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "sku"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "description", "price", "currency",
			"in_stock", "stock_qty", "attributes", "images", "updated_at",
		}),
	}).Create(product).Error
}

func (r *ProductRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Product{}).Count(&count).Error
	return count, err
}
