package ports

import (
	"context"

	"github.com/crew-app/crew/internal/core/domain"
)

// UserRepository stores identity records. Email uniqueness is enforced at
// this layer; Create translates a duplicate email into a
// domain.ConflictError.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

type UserService interface {
	GetByID(ctx context.Context, id int) (*domain.User, error)
}
