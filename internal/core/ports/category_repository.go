package ports

import (
	"context"

	"github.com/taskloop/taskloop-api/internal/core/domain"
)

// CategoryRepository defines persistence operations for categories. The same
// owner-in-query rule as TodoRepository applies.
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) (string, error)
	FindByID(ctx context.Context, id, ownerID string) (*domain.Category, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Category, error)
	// DeleteCascade clears category_id on every todo referencing id, then
	// deletes the category. The clear always runs before the delete so no todo
	// is ever left pointing at a missing category. Returns the number of todos
	// whose reference was cleared, or domain.ErrCategoryNotFound when no
	// category matched id and ownerID.
	DeleteCascade(ctx context.Context, id, ownerID string) (int64, error)
}
