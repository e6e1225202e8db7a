package store

import (
	"context"

	"finance-analyzer/models"

	"gorm.io/gorm"
)

type Uploads struct {
	db *gorm.DB
}

func (r *Uploads) Create(ctx context.Context, u *models.Upload) error {
	return translate(r.db.WithContext(ctx).Create(u).Error)
}

// Save writes every column, so status transitions persist zero values too.
func (r *Uploads) Save(ctx context.Context, u *models.Upload) error {
	return translate(r.db.WithContext(ctx).Save(u).Error)
}

// ListByOwner returns the user's uploads, most recent first.
func (r *Uploads) ListByOwner(ctx context.Context, userID uint) ([]models.Upload, error) {
	items := make([]models.Upload, 0)
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("upload_date desc").Order("id desc").Find(&items).Error
	return items, err
}

func (r *Uploads) ByIDAndOwner(ctx context.Context, id, userID uint) (*models.Upload, error) {
	var u models.Upload
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}
