package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/philly/postboard/internal/platform/identity"
)

// Post represents a blog post in the domain.
//
// ID, AuthorID and CreatedAt are fixed at construction. Title and Content
// change only through Revise.
type Post struct {
	ID        uuid.UUID
	Title     string
	Content   string
	AuthorID  identity.UserID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ErrInvalidAuthorID is returned when a post is built without a verified author.
var ErrInvalidAuthorID = errors.New("author ID is required")

// NewPost creates a post authored by author. The author always comes from the
// authenticated caller, never from request input.
func NewPost(title, content string, author identity.UserID) (*Post, error) {
	if author.IsAnonymous() {
		return nil, ErrInvalidAuthorID
	}

	now := timestamp()
	return &Post{
		ID:        uuid.New(),
		Title:     title,
		Content:   content,
		AuthorID:  author,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Revise replaces title and content in full.
func (p *Post) Revise(title, content string) {
	p.Title = title
	p.Content = content
	p.UpdatedAt = timestamp()
}

// IsAuthoredBy reports whether actor is the post's author.
func (p *Post) IsAuthoredBy(actor identity.UserID) bool {
	return !actor.IsAnonymous() && p.AuthorID == actor
}

// Clone returns an independent copy.
func (p *Post) Clone() *Post {
	cp := *p
	return &cp
}

// timestamp is the current time at millisecond precision, the coarsest
// precision of any store, so stored and returned times compare equal.
func timestamp() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
