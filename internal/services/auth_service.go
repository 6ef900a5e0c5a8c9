package services

import (
	"time"

	"voxshop_backend/internal/auth"
	"voxshop_backend/internal/models"
	"voxshop_backend/internal/repositories"
	"voxshop_backend/internal/services/dto"
	"voxshop_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type AuthService interface {
	// Anonymous creates a throwaway user so visitors can build a cart and a
	// checkout before they ever register. The id it mints is permanent.
	Anonymous(db *gorm.DB) (*dto.AuthResponse, error)

	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(db *gorm.DB, req *dto.RefreshRequest) (*dto.AuthResponse, error)
	Logout(db *gorm.DB, userID string) error

	// Upgrade attaches credentials to an anonymous user in place. The user id
	// does not change, so carts, wishlists and transactions follow along.
	Upgrade(db *gorm.DB, userID string, req *dto.UpgradeRequest) (*dto.AuthResponse, error)
}

type authService struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Anonymous(db *gorm.DB) (*dto.AuthResponse, error) {
	user := &models.User{
		Role:        models.UserRoleCustomer,
		IsAnonymous: true,
	}
	if err := s.userRepo.Create(db, user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.issueTokens(db, user)
}

func (s *authService) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if _, err := s.userRepo.FindByEmail(db, req.Email); err == nil {
		return nil, apperrors.ConflictError("auth", "Email is already registered")
	} else if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.UserRoleCustomer,
	}
	if err := s.userRepo.Create(db, user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.issueTokens(db, user)
}

func (s *authService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewUnauthorizedError("Invalid email or password")
		}
		return nil, err
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.NewUnauthorizedError("Invalid email or password")
	}
	return s.issueTokens(db, user)
}

func (s *authService) Refresh(db *gorm.DB, req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	stored, err := s.userRepo.FindRefreshToken(db, req.RefreshToken)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTokenNotFound) {
			return nil, apperrors.NewUnauthorizedError("Invalid refresh token")
		}
		return nil, err
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.userRepo.DeleteRefreshToken(db, stored.Token)
		return nil, apperrors.NewUnauthorizedError("Refresh token expired")
	}

	user, err := s.userRepo.FindByID(db, stored.UserID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewUnauthorizedError("Invalid refresh token")
		}
		return nil, err
	}

	// Rotate: the presented token is single use.
	if err := s.userRepo.DeleteRefreshToken(db, stored.Token); err != nil {
		return nil, err
	}
	return s.issueTokens(db, user)
}

func (s *authService) Logout(db *gorm.DB, userID string) error {
	return s.userRepo.DeleteUserRefreshTokens(db, userID)
}

func (s *authService) Upgrade(db *gorm.DB, userID string, req *dto.UpgradeRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NotFoundError("auth", "User not found")
		}
		return nil, err
	}
	if !user.IsAnonymous {
		return nil, apperrors.ConflictError("auth", "Account is already registered")
	}

	if _, err := s.userRepo.FindByEmail(db, req.Email); err == nil {
		return nil, apperrors.ConflictError("auth", "Email is already registered")
	} else if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user.Email = req.Email
	user.PasswordHash = hash
	user.IsAnonymous = false
	if err := s.userRepo.Update(db, user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.issueTokens(db, user)
}

func (s *authService) issueTokens(db *gorm.DB, user *models.User) (*dto.AuthResponse, error) {
	access, err := auth.GenerateToken(user.ID, string(user.Role), user.IsAnonymous)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refresh, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.userRepo.CreateRefreshToken(db, &models.RefreshToken{
		UserID:    user.ID,
		Token:     refresh,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
	}, nil
}
