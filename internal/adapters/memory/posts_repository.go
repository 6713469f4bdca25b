// Package memory provides map-backed stores for local runs and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/philly/postboard/internal/posts/domain"
	"github.com/philly/postboard/internal/posts/ports"
)

// PostsRepository keeps posts in process memory. Every read returns a copy.
type PostsRepository struct {
	mu    sync.RWMutex
	posts map[uuid.UUID]*domain.Post
	users *UsersRepository
}

// NewPostsRepository creates an empty post store. users may be nil, in which
// case joined usernames are always empty.
func NewPostsRepository(users *UsersRepository) *PostsRepository {
	return &PostsRepository{
		posts: make(map[uuid.UUID]*domain.Post),
		users: users,
	}
}

var _ ports.PostRepository = (*PostsRepository)(nil)

func (r *PostsRepository) Create(_ context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts[post.ID] = post.Clone()
	return nil
}

func (r *PostsRepository) FindByID(_ context.Context, id uuid.UUID) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, ports.ErrPostNotFound
	}
	return post.Clone(), nil
}

func (r *PostsRepository) FindAuthoredByID(ctx context.Context, id uuid.UUID) (*ports.AuthoredPost, error) {
	post, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.authored(post), nil
}

func (r *PostsRepository) ListAuthored(_ context.Context) ([]*ports.AuthoredPost, error) {
	r.mu.RLock()
	snapshot := make([]*domain.Post, 0, len(r.posts))
	for _, post := range r.posts {
		snapshot = append(snapshot, post.Clone())
	}
	r.mu.RUnlock()

	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].CreatedAt.After(snapshot[j].CreatedAt)
	})

	result := make([]*ports.AuthoredPost, 0, len(snapshot))
	for _, post := range snapshot {
		result = append(result, r.authored(post))
	}
	return result, nil
}

func (r *PostsRepository) Update(_ context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.posts[post.ID]
	if !ok {
		return ports.ErrPostNotFound
	}
	stored.Title = post.Title
	stored.Content = post.Content
	stored.UpdatedAt = post.UpdatedAt
	return nil
}

func (r *PostsRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return ports.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

// Ping always succeeds; it lets the memory store stand in for a database in
// readiness checks.
func (r *PostsRepository) Ping(context.Context) error {
	return nil
}

func (r *PostsRepository) authored(post *domain.Post) *ports.AuthoredPost {
	ap := &ports.AuthoredPost{Post: post}
	if r.users != nil {
		ap.AuthorUsername = r.users.username(post.AuthorID)
	}
	return ap
}
