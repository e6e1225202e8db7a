package models

import "time"

// Category is a user-owned label for transactions. Name is unique per user.
type Category struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	UserID      uint   `gorm:"not null;uniqueIndex:idx_category_user_name"`
	Name        string `gorm:"size:100;not null;uniqueIndex:idx_category_user_name"`
	Description string `gorm:"type:text"`
	Color       string `gorm:"size:7"` // #RRGGBB
	IsDefault   bool   `gorm:"not null"`
}
