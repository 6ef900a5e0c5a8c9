package database

import (
	"voxshop_backend/internal/logger"
	"voxshop_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the postgres connection.
func Connect(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
}

// Migrate runs the schema migrations for every model.
func Migrate(db *gorm.DB) error {
	logger.Info("running database migrations")

	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Address{},
		&models.Product{},
		&models.CartItem{},
		&models.WishlistItem{},
		&models.Transaction{},
		&models.TransactionItem{},
		&models.ContactMessage{},
	)
}
