package models

import (
	"time"
)

// User model. Email is stored normalized to lowercase.
type User struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Email          string `gorm:"size:255;not null;uniqueIndex"`
	HashedPassword []byte `gorm:"not null"`
	LastLoginAt    *time.Time
	Documents      []Document     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	RefreshTokens  []RefreshToken `gorm:"foreignKey:UserID"`
}
