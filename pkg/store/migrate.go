package store

import (
	"errors"
	"fmt"

	"finance-analyzer/models"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema. Each model is migrated on its own so one failure
// does not block the rest; all failures are returned joined.
func Migrate(db *gorm.DB) error {
	var errs []error
	for _, m := range []struct {
		name  string
		model any
	}{
		{"users", &models.User{}},
		{"categories", &models.Category{}},
		{"transactions", &models.Transaction{}},
		{"uploads", &models.Upload{}},
	} {
		if err := db.AutoMigrate(m.model); err != nil {
			errs = append(errs, fmt.Errorf("migrate %s: %w", m.name, err))
		}
	}
	return errors.Join(errs...)
}
