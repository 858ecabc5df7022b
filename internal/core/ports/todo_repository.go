package ports

import (
	"context"
	"time"

	"github.com/taskloop/taskloop-api/internal/core/domain"
)

// ListTodosFilter carries the query parameters for listing todos.
// OwnerID is always set by the service layer; it is never optional.
type ListTodosFilter struct {
	OwnerID    string
	Completed  *bool  // nil = both states
	CategoryID string // empty = no category filter
}

// TodoPatch is a sparse update: nil fields are left untouched. An explicitly
// empty CategoryID clears the reference.
type TodoPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *domain.Priority
	DueDate     *time.Time
	CategoryID  *string
}

// IsEmpty reports whether the patch touches no fields at all.
func (p TodoPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil &&
		p.Priority == nil && p.DueDate == nil && p.CategoryID == nil
}

// TodoRepository defines persistence operations for todos. Every lookup and
// mutation is filtered by owner in the query itself, so a record belonging to
// another user is indistinguishable from a missing one.
type TodoRepository interface {
	Create(ctx context.Context, t *domain.Todo) (string, error)
	// FindByID retrieves a todo by id, scoped to ownerID.
	FindByID(ctx context.Context, id, ownerID string) (*domain.Todo, error)
	List(ctx context.Context, filter ListTodosFilter) ([]*domain.Todo, error)
	// Update applies patch to the todo matching id and ownerID. Returns
	// domain.ErrTodoNotFound when no record matched.
	Update(ctx context.Context, id, ownerID string, patch TodoPatch) error
	Delete(ctx context.Context, id, ownerID string) error
}
