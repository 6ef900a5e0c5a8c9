package models

import "time"

type User struct {
	BaseModel
	Email        string   `gorm:"index" json:"email"` // empty for anonymous sessions
	PasswordHash string   `json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'customer'" json:"role"`
	IsAnonymous  bool     `gorm:"default:false" json:"is_anonymous"`

	// Relations
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
	Addresses     []Address      `gorm:"foreignKey:OwnerID" json:"-"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index" json:"user_id"`
	Token     string    `gorm:"not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

// Address is a saved delivery address the checkout address picker offers.
type Address struct {
	BaseModel
	OwnerID     string `gorm:"not null;index" json:"owner_id"`
	HouseNumber string `gorm:"not null" json:"house_number"`
	Street      string `gorm:"not null" json:"street"`
	City        string `gorm:"not null" json:"city"`
	State       string `json:"state"`
	Postcode    string `gorm:"not null" json:"postcode"`
	IsDefault   bool   `gorm:"default:false" json:"is_default"`
}
