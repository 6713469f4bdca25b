package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/philly/postboard/internal/adapters/memory"
	"github.com/philly/postboard/internal/platform/identity"
	postsdomain "github.com/philly/postboard/internal/posts/domain"
	postsports "github.com/philly/postboard/internal/posts/ports"
	usersdomain "github.com/philly/postboard/internal/users/domain"
	usersports "github.com/philly/postboard/internal/users/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPost(t *testing.T, title string, author identity.UserID) *postsdomain.Post {
	t.Helper()
	post, err := postsdomain.NewPost(title, "content", author)
	require.NoError(t, err)
	return post
}

func TestPostsRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewPostsRepository(nil)
	post := newPost(t, "T1", "alice")

	require.NoError(t, repo.Create(ctx, post))

	found, err := repo.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post, found)

	post.Revise("T2", "C2")
	require.NoError(t, repo.Update(ctx, post))

	found, err = repo.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "T2", found.Title)
	assert.Equal(t, "C2", found.Content)

	require.NoError(t, repo.Delete(ctx, post.ID))

	_, err = repo.FindByID(ctx, post.ID)
	assert.ErrorIs(t, err, postsports.ErrPostNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, post.ID), postsports.ErrPostNotFound)
	assert.ErrorIs(t, repo.Update(ctx, post), postsports.ErrPostNotFound)
}

func TestPostsRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewPostsRepository(nil)
	post := newPost(t, "T1", "alice")
	require.NoError(t, repo.Create(ctx, post))

	post.Title = "mutated after create"
	found, err := repo.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "T1", found.Title)

	found.Title = "mutated after read"
	again, err := repo.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "T1", again.Title)
}

func TestPostsRepository_UpdateKeepsAuthor(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewPostsRepository(nil)
	post := newPost(t, "T1", "alice")
	require.NoError(t, repo.Create(ctx, post))

	tampered := post.Clone()
	tampered.AuthorID = "mallory"
	tampered.Title = "T2"
	require.NoError(t, repo.Update(ctx, tampered))

	found, err := repo.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, identity.UserID("alice"), found.AuthorID)
	assert.Equal(t, "T2", found.Title)
}

func TestPostsRepository_ListAuthored(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUsersRepository()
	alice, err := usersdomain.NewUser("sub-alice", "", "alice")
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, alice))

	repo := memory.NewPostsRepository(users)

	list, err := repo.ListAuthored(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	older := newPost(t, "older", alice.Identity())
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := newPost(t, "newer", alice.Identity())
	orphan := newPost(t, "orphan", identity.UserID(uuid.NewString()))
	orphan.CreatedAt = time.Now().Add(-2 * time.Hour)
	for _, p := range []*postsdomain.Post{older, newer, orphan} {
		require.NoError(t, repo.Create(ctx, p))
	}

	list, err = repo.ListAuthored(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "newer", list[0].Title)
	assert.Equal(t, "older", list[1].Title)
	assert.Equal(t, "orphan", list[2].Title)
	assert.Equal(t, "alice", list[0].AuthorUsername)
	assert.Empty(t, list[2].AuthorUsername)

	single, err := repo.FindAuthoredByID(ctx, newer.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", single.AuthorUsername)
}

func TestUsersRepository(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUsersRepository()
	user, err := usersdomain.NewUser("sub-1", "alice@example.com", "alice")
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, user))

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, byID.Username)

	byExternal, err := repo.FindByExternalID(ctx, "sub-1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byExternal.ID)

	exists, err := repo.ExistsByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.FindByExternalID(ctx, "missing")
	assert.ErrorIs(t, err, usersports.ErrUserNotFound)

	dup, err := usersdomain.NewUser("sub-1", "", "alice2")
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Create(ctx, dup), usersports.ErrDuplicateUser)
}
