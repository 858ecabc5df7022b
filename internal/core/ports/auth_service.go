package ports

import (
	"context"

	"github.com/taskloop/taskloop-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout revokes the given token until its natural expiry.
	Logout(ctx context.Context, token string) error
}
