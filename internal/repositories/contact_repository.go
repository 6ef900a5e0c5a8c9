package repositories

import (
	"voxshop_backend/internal/models"

	"gorm.io/gorm"
)

type ContactRepository interface {
	Create(db *gorm.DB, message *models.ContactMessage) error
	FindUnhandled(db *gorm.DB, limit int) ([]models.ContactMessage, error)
	MarkHandled(db *gorm.DB, id string) error
}

type ContactRepositoryImpl struct{}

func NewContactRepository() ContactRepository {
	return &ContactRepositoryImpl{}
}

func (r *ContactRepositoryImpl) Create(db *gorm.DB, message *models.ContactMessage) error {
	return db.Create(message).Error
}

func (r *ContactRepositoryImpl) FindUnhandled(db *gorm.DB, limit int) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	err := db.Where("handled = ?", false).Order("created_at ASC").Limit(limit).Find(&messages).Error
	return messages, err
}

func (r *ContactRepositoryImpl) MarkHandled(db *gorm.DB, id string) error {
	return db.Model(&models.ContactMessage{}).Where("id = ?", id).Update("handled", true).Error
}
