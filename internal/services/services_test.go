package services

import (
	"encoding/json"
	"testing"

	"voxshop_backend/database"
	"voxshop_backend/internal/models"
	"voxshop_backend/internal/repositories"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens a per-test in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{Email: email, Role: models.UserRoleCustomer}
	require.NoError(t, repositories.NewUserRepository().Create(db, user))
	return user
}

func createTestProduct(t *testing.T, db *gorm.DB, sku string, price int64, images ...string) *models.Product {
	t.Helper()

	imagesJSON, err := json.Marshal(images)
	require.NoError(t, err)

	product := &models.Product{
		SKU:      sku,
		Name:     "Product " + sku,
		Price:    price,
		Currency: "eur",
		InStock:  true,
		StockQty: 10,
		Images:   imagesJSON,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
