package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/philly/postboard/internal/adapters/postgres"
	"github.com/philly/postboard/internal/platform/identity"
	"github.com/philly/postboard/internal/posts/domain"
	"github.com/philly/postboard/internal/posts/ports"
	usersdomain "github.com/philly/postboard/internal/users/domain"
	usersports "github.com/philly/postboard/internal/users/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeQuerier records the last statement and answers with canned results.
type fakeQuerier struct {
	sql  string
	args []any

	tag      pgconn.CommandTag
	execErr  error
	row      pgx.Row
	queryErr error
}

func (f *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.sql, f.args = sql, args
	return f.tag, f.execErr
}

func (f *fakeQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.sql, f.args = sql, args
	return nil, f.queryErr
}

func (f *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.sql, f.args = sql, args
	return f.row
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, v := range r.values {
		switch d := dest[i].(type) {
		case *pgtype.UUID:
			*d = v.(pgtype.UUID)
		case *pgtype.Timestamptz:
			*d = v.(pgtype.Timestamptz)
		case *pgtype.Text:
			*d = v.(pgtype.Text)
		case *string:
			*d = v.(string)
		}
	}
	return nil
}

func TestPostRepository_Create(t *testing.T) {
	q := &fakeQuerier{tag: pgconn.NewCommandTag("INSERT 0 1")}
	repo := postgres.NewPostRepositoryWithQuerier(q)
	post, err := domain.NewPost("T1", "C1", identity.UserID(uuid.NewString()))
	require.NoError(t, err)

	require.NoError(t, repo.Create(context.Background(), post))

	assert.Equal(t, "INSERT INTO posts (id,title,content,author_id,created_at,updated_at) VALUES ($1,$2,$3,$4,$5,$6)", q.sql)
	assert.Len(t, q.args, 6)
}

func TestPostRepository_Create_RejectsNonUUIDAuthor(t *testing.T) {
	q := &fakeQuerier{}
	repo := postgres.NewPostRepositoryWithQuerier(q)
	post, err := domain.NewPost("T1", "C1", identity.UserID("alice"))
	require.NoError(t, err)

	err = repo.Create(context.Background(), post)

	require.Error(t, err)
	assert.Empty(t, q.sql, "no statement should be sent")
}

func TestPostRepository_ZeroRowsIsNotFound(t *testing.T) {
	q := &fakeQuerier{tag: pgconn.NewCommandTag("UPDATE 0")}
	repo := postgres.NewPostRepositoryWithQuerier(q)
	post, err := domain.NewPost("T1", "C1", identity.UserID(uuid.NewString()))
	require.NoError(t, err)

	assert.ErrorIs(t, repo.Update(context.Background(), post), ports.ErrPostNotFound)
	assert.Contains(t, q.sql, "UPDATE posts SET title = $1, content = $2, updated_at = $3 WHERE id = $4")

	q.tag = pgconn.NewCommandTag("DELETE 0")
	assert.ErrorIs(t, repo.Delete(context.Background(), post.ID), ports.ErrPostNotFound)

	q.tag = pgconn.NewCommandTag("DELETE 1")
	assert.NoError(t, repo.Delete(context.Background(), post.ID))
}

func TestPostRepository_FindByID(t *testing.T) {
	id, author := uuid.New(), uuid.New()
	now := time.Now().UTC()
	q := &fakeQuerier{row: fakeRow{values: []any{
		pgtype.UUID{Bytes: id, Valid: true},
		"T1",
		"C1",
		pgtype.UUID{Bytes: author, Valid: true},
		pgtype.Timestamptz{Time: now, Valid: true},
		pgtype.Timestamptz{Time: now, Valid: true},
	}}}
	repo := postgres.NewPostRepositoryWithQuerier(q)

	post, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, id, post.ID)
	assert.Equal(t, "T1", post.Title)
	assert.Equal(t, identity.UserID(author.String()), post.AuthorID)
	assert.Equal(t, now, post.CreatedAt)
}

func TestPostRepository_FindAuthoredByID(t *testing.T) {
	id, author := uuid.New(), uuid.New()
	now := time.Now().UTC()
	q := &fakeQuerier{row: fakeRow{values: []any{
		pgtype.UUID{Bytes: id, Valid: true},
		"T1",
		"C1",
		pgtype.UUID{Bytes: author, Valid: true},
		pgtype.Timestamptz{Time: now, Valid: true},
		pgtype.Timestamptz{Time: now, Valid: true},
		pgtype.Text{String: "alice", Valid: true},
	}}}
	repo := postgres.NewPostRepositoryWithQuerier(q)

	post, err := repo.FindAuthoredByID(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, "alice", post.AuthorUsername)
	assert.Contains(t, q.sql, "LEFT JOIN users u ON p.author_id = u.id")
}

func TestPostRepository_NoRowsIsNotFound(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}}
	repo := postgres.NewPostRepositoryWithQuerier(q)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ports.ErrPostNotFound)

	_, err = repo.FindAuthoredByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ports.ErrPostNotFound)
}

func TestPostRepository_DriverErrorsAreWrapped(t *testing.T) {
	driverErr := errors.New("connection reset")
	q := &fakeQuerier{row: fakeRow{err: driverErr}, queryErr: driverErr, execErr: driverErr}
	repo := postgres.NewPostRepositoryWithQuerier(q)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, driverErr)
	assert.NotErrorIs(t, err, ports.ErrPostNotFound)

	_, err = repo.ListAuthored(context.Background())
	assert.ErrorIs(t, err, driverErr)
	assert.Contains(t, q.sql, "ORDER BY p.created_at DESC")

	err = repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, driverErr)
	assert.NotErrorIs(t, err, ports.ErrPostNotFound)
}

func TestUserRepository_NoRowsIsNotFound(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}}
	repo := postgres.NewUserRepositoryWithQuerier(q)

	_, err := repo.FindByExternalID(context.Background(), "sub")
	assert.ErrorIs(t, err, usersports.ErrUserNotFound)
	assert.Contains(t, q.sql, "WHERE external_id = $1")
}

func TestUserRepository_UniqueViolation(t *testing.T) {
	q := &fakeQuerier{execErr: &pgconn.PgError{Code: "23505"}}
	repo := postgres.NewUserRepositoryWithQuerier(q)

	err := repo.Create(context.Background(), newUser(t))

	assert.ErrorIs(t, err, usersports.ErrDuplicateUser)
}

func newUser(t *testing.T) *usersdomain.User {
	t.Helper()
	user, err := usersdomain.NewUser("sub", "", "alice")
	require.NoError(t, err)
	return user
}
