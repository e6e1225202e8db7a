package models

import (
	"time"
)

// User model
type User struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Username       string      `gorm:"size:50;not null;uniqueIndex"`
	Email          string      `gorm:"size:100;not null;uniqueIndex"`
	HashedPassword []byte      `gorm:"not null"`
	FirstName      string      `gorm:"size:50"`
	LastName       string      `gorm:"size:50"`
	Preferences    Preferences `gorm:"embedded"`
}
