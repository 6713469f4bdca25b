package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/philly/postboard/internal/platform/identity"
	"github.com/philly/postboard/internal/users/domain"
	"github.com/philly/postboard/internal/users/ports"
)

// UsersRepository keeps users in process memory.
type UsersRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]domain.User
}

// NewUsersRepository creates an empty in-memory user store.
func NewUsersRepository() *UsersRepository {
	return &UsersRepository{users: make(map[uuid.UUID]domain.User)}
}

var _ ports.UserRepository = (*UsersRepository)(nil)

func (r *UsersRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.ExternalID == user.ExternalID || existing.Username == user.Username {
			return ports.ErrDuplicateUser
		}
	}
	if _, ok := r.users[user.ID]; ok {
		return ports.ErrDuplicateUser
	}
	r.users[user.ID] = *user
	return nil
}

func (r *UsersRepository) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ports.ErrUserNotFound
	}
	return &user, nil
}

func (r *UsersRepository) FindByExternalID(_ context.Context, externalID string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.ExternalID == externalID {
			return &user, nil
		}
	}
	return nil, ports.ErrUserNotFound
}

func (r *UsersRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

// username resolves the display name for a post author.
func (r *UsersRepository) username(id identity.UserID) string {
	uid, err := uuid.Parse(id.String())
	if err != nil {
		return ""
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.users[uid].Username
}
