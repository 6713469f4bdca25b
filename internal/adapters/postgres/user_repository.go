package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/philly/postboard/internal/platform/postgres"
	"github.com/philly/postboard/internal/users/domain"
	"github.com/philly/postboard/internal/users/ports"
)

const uniqueViolation = "23505"

var userColumns = []string{
	"id", "external_id", "email", "username", "display_name", "created_at", "updated_at",
}

type UserRepository struct {
	postgres.BaseRepository
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		BaseRepository: postgres.NewBaseRepository(pool),
	}
}

var _ ports.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query, args, err := r.SB.
		Insert("users").
		Columns(userColumns...).
		Values(
			postgres.UUID(user.ID),
			user.ExternalID,
			nullString(user.Email),
			user.Username,
			nullString(user.DisplayName),
			postgres.Timestamptz(user.CreatedAt),
			postgres.Timestamptz(user.UpdatedAt),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("UserRepository.Create: build query: %w", err)
	}

	if _, err := r.DB.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ports.ErrDuplicateUser
		}
		return fmt.Errorf("UserRepository.Create: %w", err)
	}

	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.findOne(ctx, "UserRepository.FindByID", sq.Eq{"id": postgres.UUID(id)})
}

func (r *UserRepository) FindByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	return r.findOne(ctx, "UserRepository.FindByExternalID", sq.Eq{"external_id": externalID})
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	sub, args, err := r.SB.Select("1").From("users").Where(sq.Eq{"username": username}).ToSql()
	if err != nil {
		return false, fmt.Errorf("UserRepository.ExistsByUsername: build query: %w", err)
	}

	var exists bool
	if err := r.DB.QueryRow(ctx, "SELECT EXISTS("+sub+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("UserRepository.ExistsByUsername: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) findOne(ctx context.Context, op string, where sq.Eq) (*domain.User, error) {
	query, args, err := r.SB.Select(userColumns...).From("users").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}

	var (
		user        domain.User
		id          pgtype.UUID
		email       pgtype.Text
		displayName pgtype.Text
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)

	err = r.DB.QueryRow(ctx, query, args...).Scan(
		&id,
		&user.ExternalID,
		&email,
		&user.Username,
		&displayName,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user.ID = uuid.UUID(id.Bytes)
	user.Email = email.String
	user.DisplayName = displayName.String
	user.CreatedAt = createdAt.Time
	user.UpdatedAt = updatedAt.Time
	return &user, nil
}

func nullString(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

// NewUserRepositoryWithQuerier builds the repository over an arbitrary connection.
func NewUserRepositoryWithQuerier(db postgres.Querier) *UserRepository {
	return &UserRepository{
		BaseRepository: postgres.NewBaseRepositoryWithQuerier(db),
	}
}
