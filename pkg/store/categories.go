package store

import (
	"context"

	"finance-analyzer/models"

	"gorm.io/gorm"
)

type Categories struct {
	db *gorm.DB
}

func (r *Categories) Create(ctx context.Context, c *models.Category) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

// CreateBatch inserts all categories in one statement.
func (r *Categories) CreateBatch(ctx context.Context, cs []models.Category) error {
	if len(cs) == 0 {
		return nil
	}
	return translate(r.db.WithContext(ctx).Create(&cs).Error)
}

func (r *Categories) Save(ctx context.Context, c *models.Category) error {
	return translate(r.db.WithContext(ctx).Save(c).Error)
}

// ListByOwner returns the user's categories ordered by name.
func (r *Categories) ListByOwner(ctx context.Context, userID uint) ([]models.Category, error) {
	items := make([]models.Category, 0)
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name asc").Find(&items).Error
	return items, err
}

func (r *Categories) ByIDAndOwner(ctx context.Context, id, userID uint) (*models.Category, error) {
	var c models.Category
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&c).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *Categories) ExistsByNameAndOwner(ctx context.Context, name string, userID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Where("user_id = ? AND name = ?", userID, name).Count(&n).Error
	return n > 0, err
}

// Delete removes an owned category and clears the reference on its transactions.
func (r *Categories) Delete(ctx context.Context, id, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Transaction{}).
			Where("category_id = ? AND user_id = ?", id, userID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Category{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
