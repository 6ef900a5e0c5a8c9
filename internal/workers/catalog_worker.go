package workers

import (
	"context"
	"time"

	"voxshop_backend/internal/logger"
	"voxshop_backend/internal/services"

	"gorm.io/gorm"
)

const catalogSyncInterval = 24 * time.Hour

// CatalogWorker refreshes the product catalog from the supplier feed once a
// day. It runs one sync at startup so a fresh deployment has products.
type CatalogWorker struct {
	db             *gorm.DB
	productService services.ProductService
	stop           chan struct{}
}

func NewCatalogWorker(db *gorm.DB, productService services.ProductService) *CatalogWorker {
	return &CatalogWorker{
		db:             db,
		productService: productService,
		stop:           make(chan struct{}),
	}
}

func (w *CatalogWorker) Start() {
	go w.run()
}

func (w *CatalogWorker) Stop() {
	close(w.stop)
}

func (w *CatalogWorker) run() {
	w.sync()

	ticker := time.NewTicker(catalogSyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.sync()
		case <-w.stop:
			return
		}
	}
}

func (w *CatalogWorker) sync() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	_, err := w.productService.SyncCatalog(ctx, w.db)
	logger.WorkerLog("catalog", "sync", err)
}
