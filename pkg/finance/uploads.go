package finance

import (
	"context"
	"errors"

	"finance-analyzer/models"
	"finance-analyzer/pkg/apperr"
	"finance-analyzer/pkg/store"
)

// UploadService reads the import history. Records are written by the csvimport pipeline.
type UploadService struct {
	st *store.Store
}

func NewUploadService(st *store.Store) *UploadService {
	return &UploadService{st: st}
}

func (s *UploadService) List(ctx context.Context, userID uint) ([]models.Upload, error) {
	return s.st.Uploads.ListByOwner(ctx, userID)
}

func (s *UploadService) Get(ctx context.Context, id, userID uint) (*models.Upload, error) {
	u, err := s.st.Uploads.ByIDAndOwner(ctx, id, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound("File not found or access denied")
	}
	return u, err
}
