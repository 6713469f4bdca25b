package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/philly/postboard/internal/platform/identity"
	"github.com/philly/postboard/internal/platform/postgres"
	"github.com/philly/postboard/internal/posts/domain"
	"github.com/philly/postboard/internal/posts/ports"
)

var postColumns = []string{
	"p.id", "p.title", "p.content", "p.author_id", "p.created_at", "p.updated_at",
}

// PostRepository implements the posts.PostRepository interface using PostgreSQL
type PostRepository struct {
	postgres.BaseRepository // Embed the base repository for common functionality
}

// NewPostRepository creates a new PostgreSQL posts repository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{
		BaseRepository: postgres.NewBaseRepository(db),
	}
}

// NewPostRepositoryWithQuerier builds the repository over an arbitrary
// connection, such as a transaction.
func NewPostRepositoryWithQuerier(db postgres.Querier) *PostRepository {
	return &PostRepository{
		BaseRepository: postgres.NewBaseRepositoryWithQuerier(db),
	}
}

var _ ports.PostRepository = (*PostRepository)(nil)

// Create inserts a new post into the database
func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	authorID, err := postgres.UUIDFromString(post.AuthorID.String())
	if err != nil {
		return fmt.Errorf("PostRepository.Create: author: %w", err)
	}

	query, args, err := r.SB.
		Insert("posts").
		Columns("id", "title", "content", "author_id", "created_at", "updated_at").
		Values(
			postgres.UUID(post.ID),
			post.Title,
			post.Content,
			authorID,
			postgres.Timestamptz(post.CreatedAt),
			postgres.Timestamptz(post.UpdatedAt),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("PostRepository.Create: build query: %w", err)
	}

	_, err = r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("PostRepository.Create: %w", err)
	}

	return nil
}

// Update replaces title and content of an existing post
func (r *PostRepository) Update(ctx context.Context, post *domain.Post) error {
	query, args, err := r.SB.
		Update("posts").
		Set("title", post.Title).
		Set("content", post.Content).
		Set("updated_at", postgres.Timestamptz(post.UpdatedAt)).
		Where(sq.Eq{"id": postgres.UUID(post.ID)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("PostRepository.Update: build query: %w", err)
	}

	result, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("PostRepository.Update: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ports.ErrPostNotFound
	}

	return nil
}

// Delete removes a post from the database
func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := r.SB.
		Delete("posts").
		Where(sq.Eq{"id": postgres.UUID(id)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("PostRepository.Delete: build query: %w", err)
	}

	result, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("PostRepository.Delete: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ports.ErrPostNotFound
	}

	return nil
}

// FindByID retrieves a post by its ID
func (r *PostRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	query, args, err := r.SB.
		Select(postColumns...).
		From("posts p").
		Where(sq.Eq{"p.id": postgres.UUID(id)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("PostRepository.FindByID: build query: %w", err)
	}

	post, err := scanPost(r.DB.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrPostNotFound
		}
		return nil, fmt.Errorf("PostRepository.FindByID: %w", err)
	}

	return post, nil
}

// FindAuthoredByID retrieves a post joined with its author's username
func (r *PostRepository) FindAuthoredByID(ctx context.Context, id uuid.UUID) (*ports.AuthoredPost, error) {
	query, args, err := r.authoredQuery().
		Where(sq.Eq{"p.id": postgres.UUID(id)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("PostRepository.FindAuthoredByID: build query: %w", err)
	}

	post, err := scanAuthoredPost(r.DB.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrPostNotFound
		}
		return nil, fmt.Errorf("PostRepository.FindAuthoredByID: %w", err)
	}

	return post, nil
}

// ListAuthored retrieves every post with author usernames, newest first
func (r *PostRepository) ListAuthored(ctx context.Context) ([]*ports.AuthoredPost, error) {
	query, args, err := r.authoredQuery().
		OrderBy("p.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("PostRepository.ListAuthored: build query: %w", err)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("PostRepository.ListAuthored: %w", err)
	}
	defer rows.Close()

	posts := make([]*ports.AuthoredPost, 0)
	for rows.Next() {
		post, err := scanAuthoredPost(rows)
		if err != nil {
			return nil, fmt.Errorf("PostRepository.ListAuthored: scan: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("PostRepository.ListAuthored: rows error: %w", err)
	}

	return posts, nil
}

// Only the username is selected from users.
func (r *PostRepository) authoredQuery() sq.SelectBuilder {
	return r.SB.
		Select(append(postColumns, "u.username")...).
		From("posts p").
		LeftJoin("users u ON p.author_id = u.id")
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var (
		post      domain.Post
		id        pgtype.UUID
		authorID  pgtype.UUID
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	if err := row.Scan(&id, &post.Title, &post.Content, &authorID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	post.ID = uuid.UUID(id.Bytes)
	post.AuthorID = identity.UserID(uuid.UUID(authorID.Bytes).String())
	post.CreatedAt = createdAt.Time
	post.UpdatedAt = updatedAt.Time
	return &post, nil
}

func scanAuthoredPost(row pgx.Row) (*ports.AuthoredPost, error) {
	var (
		post      domain.Post
		id        pgtype.UUID
		authorID  pgtype.UUID
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
		username  pgtype.Text
	)

	if err := row.Scan(&id, &post.Title, &post.Content, &authorID, &createdAt, &updatedAt, &username); err != nil {
		return nil, err
	}

	post.ID = uuid.UUID(id.Bytes)
	post.AuthorID = identity.UserID(uuid.UUID(authorID.Bytes).String())
	post.CreatedAt = createdAt.Time
	post.UpdatedAt = updatedAt.Time
	return &ports.AuthoredPost{Post: &post, AuthorUsername: username.String}, nil
}
