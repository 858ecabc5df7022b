package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskloop/taskloop-api/internal/core/domain"
	"github.com/taskloop/taskloop-api/internal/core/ports"
)

type CategoryService struct {
	repo   ports.CategoryRepository
	logger zerolog.Logger
}

func NewCategoryService(repo ports.CategoryRepository, logger zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, logger: logger}
}

// ListCategories returns all categories owned by the caller.
func (s *CategoryService) ListCategories(ctx context.Context, ownerID string) ([]*domain.Category, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.repo.ListByOwner(ctx, ownerID)
}

// CreateCategory creates a new category for the caller. Name and color are
// stored verbatim; only an all-whitespace name is rejected.
func (s *CategoryService) CreateCategory(ctx context.Context, input ports.CreateCategoryInput) (string, error) {
	if input.OwnerID == "" {
		return "", domain.ErrUnauthenticated
	}
	if strings.TrimSpace(input.Name) == "" {
		return "", domain.ErrInvalidInput
	}

	id, err := s.repo.Create(ctx, &domain.Category{
		Name:      input.Name,
		Color:     input.Color,
		OwnerID:   input.OwnerID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", input.OwnerID).Msg("failed to create category")
		return "", err
	}

	s.logger.Info().Str("category_id", id).Str("owner_id", input.OwnerID).Msg("category created")
	return id, nil
}

// DeleteCategory removes the caller's category. Every todo referencing it has
// its category cleared first; the todos themselves are never deleted. Returns
// the number of todos whose reference was cleared.
func (s *CategoryService) DeleteCategory(ctx context.Context, ownerID, id string) (int64, error) {
	if ownerID == "" {
		return 0, domain.ErrUnauthenticated
	}

	cleared, err := s.repo.DeleteCascade(ctx, id, ownerID)
	if err != nil {
		return 0, err
	}

	s.logger.Info().
		Str("category_id", id).
		Str("owner_id", ownerID).
		Int64("todos_cleared", cleared).
		Msg("category deleted")
	return cleared, nil
}
