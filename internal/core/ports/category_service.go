package ports

import (
	"context"

	"github.com/taskloop/taskloop-api/internal/core/domain"
)

// CreateCategoryInput carries all data needed to create a category.
type CreateCategoryInput struct {
	OwnerID string
	Name    string
	Color   string
}

// CategoryService defines the use-case operations for categories.
type CategoryService interface {
	ListCategories(ctx context.Context, ownerID string) ([]*domain.Category, error)
	CreateCategory(ctx context.Context, input CreateCategoryInput) (string, error)
	// DeleteCategory removes the category and clears the reference on every
	// todo that pointed to it, returning how many references were cleared.
	DeleteCategory(ctx context.Context, ownerID, id string) (int64, error)
}
