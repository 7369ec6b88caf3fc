package ports

import (
	"context"

	"github.com/99minutos/auth-service/internal/core/domain"
)

// AuthRepository defines the interface for user persistence.
// Implementations return domain.ErrUserNotFound for missing rows and
// domain.ErrUserExists when the unique email constraint rejects an insert.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
