package models

type ContactMessage struct {
	BaseModel
	Name    string `gorm:"not null" json:"name"`
	Email   string `gorm:"not null" json:"email"`
	Subject string `gorm:"not null" json:"subject"`
	Body    string `gorm:"not null" json:"body"`
	Handled bool   `gorm:"default:false" json:"handled"`
}
