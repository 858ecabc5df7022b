package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskloop/taskloop-api/internal/core/domain"
	"github.com/taskloop/taskloop-api/internal/core/ports"
)

type TodoService struct {
	todos      ports.TodoRepository
	categories ports.CategoryRepository
	logger     zerolog.Logger
}

func NewTodoService(todos ports.TodoRepository, categories ports.CategoryRepository, logger zerolog.Logger) *TodoService {
	return &TodoService{todos: todos, categories: categories, logger: logger}
}

// ListTodos returns the caller's todos, each enriched with its resolved
// category, ordered by priority (high first) and then by creation time
// (newest first). The ordering is part of the contract.
func (s *TodoService) ListTodos(ctx context.Context, input ports.ListTodosInput) ([]ports.TodoView, error) {
	if input.OwnerID == "" {
		return nil, domain.ErrUnauthenticated
	}

	todos, err := s.todos.List(ctx, ports.ListTodosFilter{
		OwnerID:    input.OwnerID,
		Completed:  input.Completed,
		CategoryID: input.CategoryID,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", input.OwnerID).Msg("failed to list todos")
		return nil, err
	}

	categories, err := s.categories.ListByOwner(ctx, input.OwnerID)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", input.OwnerID).Msg("failed to resolve categories")
		return nil, err
	}
	byID := make(map[string]*domain.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	views := make([]ports.TodoView, 0, len(todos))
	for _, t := range todos {
		view := ports.TodoView{Todo: *t}
		if t.CategoryID != "" {
			view.Category = byID[t.CategoryID]
		}
		views = append(views, view)
	}

	sort.SliceStable(views, func(i, j int) bool {
		wi, wj := views[i].Todo.Priority.Weight(), views[j].Todo.Priority.Weight()
		if wi != wj {
			return wi > wj
		}
		return views[i].Todo.CreatedAt.After(views[j].Todo.CreatedAt)
	})

	return views, nil
}

// CreateTodo creates a new todo for the caller. Completed always starts false.
// A supplied category id must resolve to a category the caller owns.
func (s *TodoService) CreateTodo(ctx context.Context, input ports.CreateTodoInput) (string, error) {
	if input.OwnerID == "" {
		return "", domain.ErrUnauthenticated
	}
	if strings.TrimSpace(input.Title) == "" {
		return "", domain.ErrInvalidInput
	}
	if !input.Priority.Valid() {
		return "", domain.ErrInvalidInput
	}
	if input.CategoryID != "" {
		if _, err := s.categories.FindByID(ctx, input.CategoryID, input.OwnerID); err != nil {
			return "", err
		}
	}

	todo := &domain.Todo{
		Title:       input.Title,
		Description: input.Description,
		Completed:   false,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		CategoryID:  input.CategoryID,
		OwnerID:     input.OwnerID,
		CreatedAt:   time.Now().UTC(),
	}

	id, err := s.todos.Create(ctx, todo)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", input.OwnerID).Msg("failed to create todo")
		return "", err
	}

	s.logger.Info().Str("todo_id", id).Str("owner_id", input.OwnerID).Str("priority", string(input.Priority)).Msg("todo created")
	return id, nil
}

// ToggleTodo flips the completed flag of the caller's todo and returns the
// updated record.
func (s *TodoService) ToggleTodo(ctx context.Context, ownerID, id string) (*domain.Todo, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthenticated
	}

	todo, err := s.todos.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	flipped := !todo.Completed
	if err := s.todos.Update(ctx, id, ownerID, ports.TodoPatch{Completed: &flipped}); err != nil {
		return nil, err
	}

	todo.Completed = flipped
	return todo, nil
}

// UpdateTodo applies a sparse patch: only the fields supplied in input change.
func (s *TodoService) UpdateTodo(ctx context.Context, input ports.UpdateTodoInput) error {
	if input.OwnerID == "" {
		return domain.ErrUnauthenticated
	}
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return domain.ErrInvalidInput
	}
	if input.Priority != nil && !input.Priority.Valid() {
		return domain.ErrInvalidInput
	}
	if input.CategoryID != nil && *input.CategoryID != "" {
		if _, err := s.categories.FindByID(ctx, *input.CategoryID, input.OwnerID); err != nil {
			return err
		}
	}

	patch := ports.TodoPatch{
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		CategoryID:  input.CategoryID,
	}
	if patch.IsEmpty() {
		// Nothing to write, but the not-found contract still applies.
		_, err := s.todos.FindByID(ctx, input.ID, input.OwnerID)
		return err
	}

	return s.todos.Update(ctx, input.ID, input.OwnerID, patch)
}

// DeleteTodo removes the caller's todo permanently. Todos have no dependents,
// so there is no cascade.
func (s *TodoService) DeleteTodo(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return domain.ErrUnauthenticated
	}

	if err := s.todos.Delete(ctx, id, ownerID); err != nil {
		return err
	}

	s.logger.Info().Str("todo_id", id).Str("owner_id", ownerID).Msg("todo deleted")
	return nil
}

// GetStats scans the caller's todos and aggregates counts. Counting in a
// single scan keeps completed + pending == total true by construction.
func (s *TodoService) GetStats(ctx context.Context, ownerID string) (*ports.TodoStats, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthenticated
	}

	todos, err := s.todos.List(ctx, ports.ListTodosFilter{OwnerID: ownerID})
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to load todos for stats")
		return nil, err
	}

	stats := &ports.TodoStats{Total: len(todos)}
	for _, t := range todos {
		if t.Completed {
			stats.Completed++
			continue
		}
		stats.Pending++
		if t.Priority == domain.PriorityHigh {
			stats.HighPriority++
		}
	}
	return stats, nil
}
