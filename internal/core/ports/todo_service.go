package ports

import (
	"context"
	"time"

	"github.com/taskloop/taskloop-api/internal/core/domain"
)

// CreateTodoInput carries all data needed to create a new todo. Completed is
// deliberately absent: a new todo always starts pending.
type CreateTodoInput struct {
	OwnerID     string
	Title       string
	Description string
	Priority    domain.Priority
	DueDate     *time.Time
	CategoryID  string
}

// UpdateTodoInput is a sparse patch: nil fields keep their current value.
type UpdateTodoInput struct {
	OwnerID     string
	ID          string
	Title       *string
	Description *string
	Priority    *domain.Priority
	DueDate     *time.Time
	CategoryID  *string
}

// ListTodosInput carries the list query for one caller.
type ListTodosInput struct {
	OwnerID    string
	Completed  *bool
	CategoryID string
}

// TodoView is a todo enriched with its resolved category, when it has one.
type TodoView struct {
	Todo     domain.Todo
	Category *domain.Category
}

// TodoStats aggregates the caller's todos. Completed + Pending == Total holds
// for every result.
type TodoStats struct {
	Total        int `json:"total"`
	Completed    int `json:"completed"`
	Pending      int `json:"pending"`
	HighPriority int `json:"high_priority"`
}

// TodoService defines the use-case operations for todos. Every method resolves
// authorization from the OwnerID it is given before touching the store.
type TodoService interface {
	ListTodos(ctx context.Context, input ListTodosInput) ([]TodoView, error)
	CreateTodo(ctx context.Context, input CreateTodoInput) (string, error)
	ToggleTodo(ctx context.Context, ownerID, id string) (*domain.Todo, error)
	UpdateTodo(ctx context.Context, input UpdateTodoInput) error
	DeleteTodo(ctx context.Context, ownerID, id string) error
	GetStats(ctx context.Context, ownerID string) (*TodoStats, error)
}
