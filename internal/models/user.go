package models

import "time"

// User is a household member. Users are soft-deleted via the Active flag
// and never removed; email uniqueness is enforced among active users only.
// The first user ever registered becomes the admin.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"not null" json:"name"`
	Email        string     `gorm:"not null;index" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	UseBiometric bool       `gorm:"not null;default:false" json:"use_biometric"`
	PhotoPath    *string    `json:"photo_path,omitempty"`
	IsAdmin      bool       `gorm:"not null;default:false" json:"is_admin"`
	Active       bool       `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastAccess   *time.Time `json:"last_access,omitempty"`
}
