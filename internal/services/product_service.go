package services

import (
	"context"
	"encoding/json"

	"voxshop_backend/internal/logger"
	"voxshop_backend/internal/models"
	"voxshop_backend/internal/repositories"
	"voxshop_backend/internal/supplier"
	"voxshop_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// CatalogFetcher is the slice of the supplier client the sync path needs;
// tests substitute it.
type CatalogFetcher interface {
	FetchCatalog(ctx context.Context) ([]supplier.FeedProduct, error)
}

type ProductService interface {
	List(db *gorm.DB, limit, offset int) ([]models.Product, int64, error)
	GetByID(db *gorm.DB, id string) (*models.Product, error)

	// SyncCatalog pulls the supplier feed and upserts each row by SKU.
	// Returns the number of rows written.
	SyncCatalog(ctx context.Context, db *gorm.DB) (int, error)
}

type productService struct {
	productRepo repositories.ProductRepository
	feed        CatalogFetcher
	currency    string
}

func NewProductService(productRepo repositories.ProductRepository, feed CatalogFetcher, currency string) ProductService {
	return &productService{
		productRepo: productRepo,
		feed:        feed,
		currency:    currency,
	}
}

func (s *productService) List(db *gorm.DB, limit, offset int) ([]models.Product, int64, error) {
	products, err := s.productRepo.FindAll(db, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(db)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (s *productService) GetByID(db *gorm.DB, id string) (*models.Product, error) {
	product, err := s.productRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProductNotFound) {
			return nil, apperrors.NotFoundError("catalog", "Product not found")
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) SyncCatalog(ctx context.Context, db *gorm.DB) (int, error) {
	feed, err := s.feed.FetchCatalog(ctx)
	if err != nil {
		return 0, apperrors.ExternalError("supplier", "Catalog fetch failed", err)
	}

	written := 0
	for _, fp := range feed {
		if fp.SKU == "" {
			continue
		}

		currency := fp.Currency
		if currency == "" {
			currency = s.currency
		}
		images, err := json.Marshal(fp.Images)
		if err != nil {
			return written, err
		}

		product := &models.Product{
			SKU:         fp.SKU,
			Name:        fp.Name,
			Description: fp.Description,
			Price:       fp.Price,
			Currency:    currency,
			InStock:     fp.Stock > 0,
			StockQty:    fp.Stock,
			Images:      images,
		}
		if err := s.productRepo.UpsertBySKU(db, product); err != nil {
			// One bad row must not abort the whole feed.
			logger.CtxWithError(ctx, "catalog upsert failed", err, "sku", fp.SKU)
			continue
		}
		written++
	}

	logger.CtxInfo(ctx, "catalog sync finished", "fetched", len(feed), "written", written)
	return written, nil
}
