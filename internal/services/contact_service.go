package services

import (
	"context"

	"voxshop_backend/internal/email"
	"voxshop_backend/internal/logger"
	"voxshop_backend/internal/models"
	"voxshop_backend/internal/repositories"
	"voxshop_backend/internal/services/dto"
	"voxshop_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ContactService interface {
	// Submit stores the message first; the SMTP forward to support is best
	// effort and never fails the request.
	Submit(ctx context.Context, db *gorm.DB, req *dto.ContactRequest) (*models.ContactMessage, error)
}

type contactService struct {
	contactRepo  repositories.ContactRepository
	sender       email.Sender
	supportEmail string
}

func NewContactService(contactRepo repositories.ContactRepository, sender email.Sender, supportEmail string) ContactService {
	return &contactService{
		contactRepo:  contactRepo,
		sender:       sender,
		supportEmail: supportEmail,
	}
}

func (s *contactService) Submit(ctx context.Context, db *gorm.DB, req *dto.ContactRequest) (*models.ContactMessage, error) {
	message := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Body,
	}
	if err := s.contactRepo.Create(db, message); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.sender.SendContactMessage(s.supportEmail, req.Name, req.Email, req.Subject, req.Body); err != nil {
		logger.CtxWithError(ctx, "contact forward failed", err, "message_id", message.ID)
	}
	return message, nil
}
