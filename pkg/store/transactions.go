package store

import (
	"context"
	"time"

	"finance-analyzer/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Transactions struct {
	db *gorm.DB
}

// Create inserts t without touching its Category association.
func (r *Transactions) Create(ctx context.Context, t *models.Transaction) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(t).Error)
}

func (r *Transactions) Save(ctx context.Context, t *models.Transaction) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(t).Error)
}

// ListByOwner returns the user's transactions, newest transaction date first.
func (r *Transactions) ListByOwner(ctx context.Context, userID uint) ([]models.Transaction, error) {
	items := make([]models.Transaction, 0)
	err := r.db.WithContext(ctx).Preload("Category").
		Where("user_id = ?", userID).
		Order("transaction_date desc").Order("id desc").
		Find(&items).Error
	return items, err
}

// Between returns the user's transactions dated in [from, to).
func (r *Transactions) Between(ctx context.Context, userID uint, from, to time.Time) ([]models.Transaction, error) {
	items := make([]models.Transaction, 0)
	err := r.db.WithContext(ctx).Preload("Category").
		Where("user_id = ? AND transaction_date >= ? AND transaction_date < ?", userID, from, to).
		Order("transaction_date asc").Order("id asc").
		Find(&items).Error
	return items, err
}

func (r *Transactions) ByIDAndOwner(ctx context.Context, id, userID uint) (*models.Transaction, error) {
	var t models.Transaction
	if err := r.db.WithContext(ctx).Preload("Category").Where("id = ? AND user_id = ?", id, userID).First(&t).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (r *Transactions) Delete(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Transaction{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
