package application

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/philly/postboard/internal/platform/apperror"
	"github.com/philly/postboard/internal/platform/eventbus"
	"github.com/philly/postboard/internal/platform/events"
	"github.com/philly/postboard/internal/platform/identity"
	"github.com/philly/postboard/internal/platform/logger"
	"github.com/philly/postboard/internal/posts/domain"
	"github.com/philly/postboard/internal/posts/ports"
)

// Error definitions for service operations
var (
	ErrUnauthenticated = apperror.New(
		apperror.CodeUnauthenticated,
		apperror.BusinessCodeMissingIdentity,
		"authentication required",
		http.StatusUnauthorized,
	)

	ErrNotPostAuthor = apperror.New(
		apperror.CodeForbidden,
		apperror.BusinessCodeNotPostAuthor,
		"only the author may modify this post",
		http.StatusForbidden,
	)

	ErrPostNotFound = apperror.New(
		apperror.CodeNotFound,
		apperror.BusinessCodePostNotFound,
		"post not found",
		http.StatusNotFound,
	)

	ErrStorage = apperror.New(
		apperror.CodeInternalError,
		apperror.BusinessCodeStorageFailure,
		"server error",
		http.StatusInternalServerError,
	)
)

// PostsService handles post-related business logic
type PostsService struct {
	repo     ports.PostRepository
	eventBus *eventbus.Bus
	logger   logger.Logger
}

// NewPostsService creates a new posts service
func NewPostsService(
	repo ports.PostRepository,
	eventBus *eventbus.Bus,
	logger logger.Logger,
) *PostsService {
	return &PostsService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// CreatePostParams contains parameters for creating a new post
type CreatePostParams struct {
	Title   string
	Content string
}

// CreatePost creates a new post authored by actor
func (s *PostsService) CreatePost(ctx context.Context, actor identity.UserID, params CreatePostParams) (*domain.Post, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	post, err := domain.NewPost(params.Title, params.Content, actor)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	if err := s.repo.Create(ctx, post); err != nil {
		s.logger.Error(ctx, "failed to create post", "error", err, "actorID", actor)
		return nil, ErrStorage.WithCause(err)
	}

	s.publish(ctx, events.PostCreatedTopic, events.PostCreatedEvent{
		PostID:     post.ID,
		ActorID:    actor,
		Title:      post.Title,
		OccurredAt: time.Now(),
	})

	return post, nil
}

// ListPosts retrieves every post with its author's username. No identity is required.
func (s *PostsService) ListPosts(ctx context.Context) ([]*ports.AuthoredPost, error) {
	posts, err := s.repo.ListAuthored(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to list posts", "error", err)
		return nil, ErrStorage.WithCause(err)
	}
	if posts == nil {
		posts = []*ports.AuthoredPost{}
	}
	return posts, nil
}

// GetPost retrieves a single post with its author's username. No identity is required.
func (s *PostsService) GetPost(ctx context.Context, id uuid.UUID) (*ports.AuthoredPost, error) {
	post, err := s.repo.FindAuthoredByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(ctx, err, id)
	}
	return post, nil
}

// UpdatePostParams contains parameters for updating a post.
// Both fields replace the stored values.
type UpdatePostParams struct {
	Title   string
	Content string
}

// UpdatePost replaces the title and content of a post owned by actor
func (s *PostsService) UpdatePost(ctx context.Context, actor identity.UserID, id uuid.UUID, params UpdatePostParams) (*domain.Post, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	post, err := s.authorizedPost(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	post.Revise(params.Title, params.Content)

	if err := s.repo.Update(ctx, post); err != nil {
		// Removed between the lookup and the write
		if errors.Is(err, ports.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		s.logger.Error(ctx, "failed to update post", "error", err, "postID", id)
		return nil, ErrStorage.WithCause(err)
	}

	s.publish(ctx, events.PostUpdatedTopic, events.PostUpdatedEvent{
		PostID:     post.ID,
		ActorID:    actor,
		Title:      post.Title,
		OccurredAt: time.Now(),
	})

	return post, nil
}

// DeletePost permanently removes a post owned by actor
func (s *PostsService) DeletePost(ctx context.Context, actor identity.UserID, id uuid.UUID) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	if _, err := s.authorizedPost(ctx, actor, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ports.ErrPostNotFound) {
			return ErrPostNotFound
		}
		s.logger.Error(ctx, "failed to delete post", "error", err, "postID", id)
		return ErrStorage.WithCause(err)
	}

	s.publish(ctx, events.PostDeletedTopic, events.PostDeletedEvent{
		PostID:     id,
		ActorID:    actor,
		OccurredAt: time.Now(),
	})

	return nil
}

// Private helper methods

// requireActor rejects calls that carry no verified identity
func requireActor(actor identity.UserID) error {
	if actor.IsAnonymous() {
		return ErrUnauthenticated
	}
	return nil
}

// authorizedPost resolves the post first and only then checks authorship,
// so a missing post is reported as not found to every caller.
func (s *PostsService) authorizedPost(ctx context.Context, actor identity.UserID, id uuid.UUID) (*domain.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(ctx, err, id)
	}
	if !post.IsAuthoredBy(actor) {
		return nil, ErrNotPostAuthor
	}
	return post, nil
}

func (s *PostsService) lookupError(ctx context.Context, err error, id uuid.UUID) error {
	if errors.Is(err, ports.ErrPostNotFound) {
		return ErrPostNotFound
	}
	s.logger.Error(ctx, "failed to find post", "error", err, "postID", id)
	return ErrStorage.WithCause(err)
}

func (s *PostsService) publish(ctx context.Context, topic eventbus.Topic, payload any) {
	if s.eventBus == nil {
		return
	}
	s.eventBus.Publish(ctx, eventbus.Event{Topic: topic, Payload: payload})
}
