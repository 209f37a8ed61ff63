package service

import (
	"context"

	"github.com/carson-networks/pocket-planner/internal/storage"
	"github.com/carson-networks/pocket-planner/internal/storage/sqlconfig"
)

type CategoryService struct {
	storage *storage.Storage
}

func NewCategoryService(store *storage.Storage) *CategoryService {
	return &CategoryService{storage: store}
}

// ListCategories returns the shared defaults plus the user's own categories.
func (s *CategoryService) ListCategories(ctx context.Context, userEmail string) ([]Category, error) {
	rows, err := s.storage.Categories.List(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	categories := make([]Category, len(rows))
	for i, row := range rows {
		categories[i] = categoryFromStorage(row)
	}
	return categories, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, userEmail string, create CategoryCreate) (*Category, error) {
	id, err := newID()
	if err != nil {
		return nil, err
	}

	row := &sqlconfig.Category{
		ID:        id,
		UserEmail: &userEmail,
		Name:      create.Name,
		Color:     create.Color,
	}
	if err = s.storage.Categories.Insert(ctx, row); err != nil {
		return nil, err
	}

	category := categoryFromStorage(row)
	return &category, nil
}

// DeleteCategory only removes categories owned by the user. Default categories
// report ErrNotFound.
func (s *CategoryService) DeleteCategory(ctx context.Context, userEmail, id string) error {
	if _, err := s.storage.Categories.FindOwned(ctx, userEmail, id); err != nil {
		return err
	}
	return s.storage.Categories.Delete(ctx, userEmail, id)
}
