package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/philly/postboard/internal/users/domain"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUser is returned when a unique column would be violated
	ErrDuplicateUser = errors.New("user already exists")
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByExternalID(ctx context.Context, externalID string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
