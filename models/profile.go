package models

import "github.com/shopspring/decimal"

// DefaultCurrency is assigned to new accounts.
const DefaultCurrency = "USD"

// Preferences holds the per-user profile settings. Stored inline on the users table.
type Preferences struct {
	// MonthlyBudgetLimit is unset until the user chooses one.
	MonthlyBudgetLimit        decimal.NullDecimal `gorm:"type:decimal(12,2)"`
	AutoCategorizationEnabled bool                `gorm:"not null"`
	PreferredCurrency         string              `gorm:"size:10;not null"`
	NotificationEmailEnabled  bool                `gorm:"not null"`
	NotificationSmsEnabled    bool                `gorm:"not null"`
}

// DefaultPreferences returns the settings a freshly registered user starts with.
func DefaultPreferences() Preferences {
	return Preferences{
		PreferredCurrency:        DefaultCurrency,
		NotificationEmailEnabled: true,
	}
}
