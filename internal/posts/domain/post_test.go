package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/philly/postboard/internal/platform/identity"
	"github.com/philly/postboard/internal/posts/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPost(t *testing.T) {
	post, err := domain.NewPost("T1", "C1", identity.UserID("alice"))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, post.ID)
	assert.Equal(t, "T1", post.Title)
	assert.Equal(t, "C1", post.Content)
	assert.Equal(t, identity.UserID("alice"), post.AuthorID)
	assert.False(t, post.CreatedAt.IsZero())
	assert.Equal(t, post.CreatedAt, post.UpdatedAt)
}

func TestNewPost_RequiresAuthor(t *testing.T) {
	post, err := domain.NewPost("T1", "C1", identity.Anonymous)

	assert.Nil(t, post)
	assert.ErrorIs(t, err, domain.ErrInvalidAuthorID)
}

func TestNewPost_IDsAreUnique(t *testing.T) {
	seen := make(map[uuid.UUID]bool)
	for i := 0; i < 100; i++ {
		post, err := domain.NewPost("t", "c", identity.UserID("alice"))
		require.NoError(t, err)
		require.False(t, seen[post.ID], "id reused")
		seen[post.ID] = true
	}
}

func TestPost_Revise(t *testing.T) {
	post, err := domain.NewPost("T1", "C1", identity.UserID("alice"))
	require.NoError(t, err)
	id, author, created := post.ID, post.AuthorID, post.CreatedAt

	time.Sleep(2 * time.Millisecond)
	post.Revise("T2", "C2")

	assert.Equal(t, "T2", post.Title)
	assert.Equal(t, "C2", post.Content)
	assert.Equal(t, id, post.ID)
	assert.Equal(t, author, post.AuthorID)
	assert.Equal(t, created, post.CreatedAt)
	assert.True(t, post.UpdatedAt.After(created))
}

func TestPost_TimestampsAtMillisecondPrecision(t *testing.T) {
	post, err := domain.NewPost("T1", "C1", identity.UserID("alice"))
	require.NoError(t, err)

	assert.Equal(t, post.CreatedAt, post.CreatedAt.Truncate(time.Millisecond))
	assert.Equal(t, time.UTC, post.CreatedAt.Location())

	post.Revise("T2", "C2")
	assert.Equal(t, post.UpdatedAt, post.UpdatedAt.Truncate(time.Millisecond))
}

func TestPost_IsAuthoredBy(t *testing.T) {
	post, err := domain.NewPost("T1", "C1", identity.UserID("alice"))
	require.NoError(t, err)

	assert.True(t, post.IsAuthoredBy(identity.UserID("alice")))
	assert.False(t, post.IsAuthoredBy(identity.UserID("bob")))
	assert.False(t, post.IsAuthoredBy(identity.Anonymous))
}

func TestPost_Clone(t *testing.T) {
	post, err := domain.NewPost("T1", "C1", identity.UserID("alice"))
	require.NoError(t, err)

	clone := post.Clone()
	clone.Revise("changed", "changed")

	assert.Equal(t, "T1", post.Title)
	assert.Equal(t, post.ID, clone.ID)
}
