// Package mongo stores posts and users in MongoDB.
package mongo

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/philly/postboard/internal/platform/identity"
	postsdomain "github.com/philly/postboard/internal/posts/domain"
	"github.com/philly/postboard/internal/posts/ports"
	usersdomain "github.com/philly/postboard/internal/users/domain"
)

const (
	postsCollection = "posts"
	usersCollection = "users"
)

// IDs are stored as canonical uuid strings so documents stay readable in the shell.
type postDocument struct {
	ID        string    `bson:"_id"`
	Title     string    `bson:"title"`
	Content   string    `bson:"content"`
	AuthorID  string    `bson:"author_id"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// authoredPostDocument is the shape produced by the author $lookup pipeline.
type authoredPostDocument struct {
	Post           postDocument `bson:",inline"`
	AuthorUsername string       `bson:"author_username"`
}

type userDocument struct {
	ID          string    `bson:"_id"`
	ExternalID  string    `bson:"external_id"`
	Email       string    `bson:"email,omitempty"`
	Username    string    `bson:"username"`
	DisplayName string    `bson:"display_name,omitempty"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func newPostDocument(p *postsdomain.Post) postDocument {
	return postDocument{
		ID:        p.ID.String(),
		Title:     p.Title,
		Content:   p.Content,
		AuthorID:  p.AuthorID.String(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (d postDocument) toDomain() (*postsdomain.Post, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("post document %q: %w", d.ID, err)
	}
	return &postsdomain.Post{
		ID:        id,
		Title:     d.Title,
		Content:   d.Content,
		AuthorID:  identity.UserID(d.AuthorID),
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}, nil
}

func (d authoredPostDocument) toDomain() (*ports.AuthoredPost, error) {
	post, err := d.Post.toDomain()
	if err != nil {
		return nil, err
	}
	return &ports.AuthoredPost{Post: post, AuthorUsername: d.AuthorUsername}, nil
}

func newUserDocument(u *usersdomain.User) userDocument {
	return userDocument{
		ID:          u.ID.String(),
		ExternalID:  u.ExternalID,
		Email:       u.Email,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (d userDocument) toDomain() (*usersdomain.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("user document %q: %w", d.ID, err)
	}
	return &usersdomain.User{
		ID:          id,
		ExternalID:  d.ExternalID,
		Email:       d.Email,
		Username:    d.Username,
		DisplayName: d.DisplayName,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}, nil
}
