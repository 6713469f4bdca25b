package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/philly/postboard/internal/platform/eventbus"
	"github.com/philly/postboard/internal/platform/identity"
)

// Event topics for posts
const (
	PostCreatedTopic eventbus.Topic = "posts.created"
	PostUpdatedTopic eventbus.Topic = "posts.updated"
	PostDeletedTopic eventbus.Topic = "posts.deleted"
)

// PostCreatedEvent is published when a new post is created
type PostCreatedEvent struct {
	PostID     uuid.UUID
	ActorID    identity.UserID // Author who created the post
	Title      string
	OccurredAt time.Time
}

// PostUpdatedEvent is published when a post's title and content are replaced
type PostUpdatedEvent struct {
	PostID     uuid.UUID
	ActorID    identity.UserID
	Title      string
	OccurredAt time.Time
}

// PostDeletedEvent is published after a post is removed
type PostDeletedEvent struct {
	PostID     uuid.UUID
	ActorID    identity.UserID
	OccurredAt time.Time
}
