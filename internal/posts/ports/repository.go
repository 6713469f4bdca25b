package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/philly/postboard/internal/posts/domain"
)

// Repository errors - these are the canonical errors that repository
// implementations should return. Adapters translate driver-level "no rows"
// into ErrPostNotFound; anything else is a storage failure.
var (
	// ErrPostNotFound is returned when no post has the requested ID
	ErrPostNotFound = errors.New("post not found")
)

// AuthoredPost is a post joined with the author's display name.
// The username is the only author attribute ever exposed alongside a post.
type AuthoredPost struct {
	*domain.Post
	AuthorUsername string // Empty when the author record is missing
}

// PostRepository is the Post Store: durable keyed storage for posts.
type PostRepository interface {
	// Create saves a new post
	Create(ctx context.Context, post *domain.Post) error

	// FindByID retrieves a post by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)

	// FindAuthoredByID retrieves a post by its ID with the author username joined
	FindAuthoredByID(ctx context.Context, id uuid.UUID) (*AuthoredPost, error)

	// ListAuthored retrieves every post with author usernames, newest first
	ListAuthored(ctx context.Context) ([]*AuthoredPost, error)

	// Update replaces the title, content and updated_at of an existing post
	Update(ctx context.Context, post *domain.Post) error

	// Delete removes a post permanently
	Delete(ctx context.Context, id uuid.UUID) error
}
