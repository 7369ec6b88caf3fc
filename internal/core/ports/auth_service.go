package ports

import (
	"context"

	"github.com/99minutos/auth-service/internal/core/domain"
)

// SignupInput carries the already-validated signup fields.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// Session is the outcome of a successful signup or login: the user and a
// freshly signed token for the session cookie.
type Session struct {
	User  *domain.User
	Token string
}

type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}
