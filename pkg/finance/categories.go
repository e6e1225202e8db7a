package finance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"finance-analyzer/models"
	"finance-analyzer/pkg/apperr"
	"finance-analyzer/pkg/store"
)

const (
	msgCategoryNotFound = "Category not found or access denied"
	msgCategoryExists   = "You already have a category with this name"
)

type defaultCategory struct {
	name, description, color string
}

var defaultCategories = []defaultCategory{
	{"Food & Groceries", "Essential food and grocery expenses", "#4CAF50"},
	{"Rent & Bills", "Housing rent and utility bills", "#2196F3"},
	{"Transport", "Transportation and travel expenses", "#FF9800"},
	{"Shopping", "General shopping and purchases", "#E91E63"},
	{"Health", "Healthcare and medical expenses", "#F44336"},
	{"Entertainment", "Entertainment and leisure activities", "#9C27B0"},
	{"Education", "Educational expenses and materials", "#3F51B5"},
	{"Others", "Miscellaneous expenses", "#607D8B"},
}

// DefaultCategories returns the eight categories seeded for a new user.
func DefaultCategories(userID uint) []models.Category {
	out := make([]models.Category, 0, len(defaultCategories))
	for _, d := range defaultCategories {
		out = append(out, models.Category{
			UserID:      userID,
			Name:        d.name,
			Description: d.description,
			Color:       d.color,
			IsDefault:   true,
		})
	}
	return out
}

// CategoryInput is the mutable part of a category.
type CategoryInput struct {
	Name        string
	Description string
	Color       string
}

type CategoryService struct {
	st *store.Store
}

func NewCategoryService(st *store.Store) *CategoryService {
	return &CategoryService{st: st}
}

func (s *CategoryService) List(ctx context.Context, userID uint) ([]models.Category, error) {
	return s.st.Categories.ListByOwner(ctx, userID)
}

func (s *CategoryService) Get(ctx context.Context, id, userID uint) (*models.Category, error) {
	c, err := s.st.Categories.ByIDAndOwner(ctx, id, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound(msgCategoryNotFound)
	}
	return c, err
}

func (s *CategoryService) Create(ctx context.Context, userID uint, in CategoryInput) (*models.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, apperr.Validation("Category name is required")
	}
	exists, err := s.st.Categories.ExistsByNameAndOwner(ctx, in.Name, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict(msgCategoryExists)
	}
	c := &models.Category{UserID: userID, Name: in.Name, Description: in.Description, Color: in.Color}
	if err := s.st.Categories.Create(ctx, c); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict(msgCategoryExists)
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

// Update rewrites an owned category. A rename must not collide with another of the user's categories.
func (s *CategoryService) Update(ctx context.Context, id, userID uint, in CategoryInput) (*models.Category, error) {
	c, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, apperr.Validation("Category name is required")
	}
	if in.Name != c.Name {
		exists, err := s.st.Categories.ExistsByNameAndOwner(ctx, in.Name, userID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperr.Conflict(msgCategoryExists)
		}
	}
	c.Name, c.Description, c.Color = in.Name, in.Description, in.Color
	if err := s.st.Categories.Save(ctx, c); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict(msgCategoryExists)
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, id, userID uint) error {
	err := s.st.Categories.Delete(ctx, id, userID)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound(msgCategoryNotFound)
	}
	return err
}
