package server

import (
	"context"
	"fmt"

	"github.com/philly/postboard/internal/adapters/memory"
	mongoadapter "github.com/philly/postboard/internal/adapters/mongo"
	pgadapter "github.com/philly/postboard/internal/adapters/postgres"
	"github.com/philly/postboard/internal/adapters/rest"
	"github.com/philly/postboard/internal/platform/logger"
	"github.com/philly/postboard/internal/platform/postgres"
	postsports "github.com/philly/postboard/internal/posts/ports"
	usersports "github.com/philly/postboard/internal/users/ports"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Storage is the set of stores backing the services, chosen by STORAGE_DRIVER
type Storage struct {
	Posts  postsports.PostRepository
	Users  usersports.UserRepository
	Health rest.HealthChecker
}

// OpenStorage connects the configured driver and prepares its schema
func OpenStorage(ctx context.Context, config Config, log logger.Logger) (*Storage, func(), error) {
	switch config.StorageDriver {
	case DriverPostgres:
		return openPostgres(ctx, config, log)
	case DriverMongo:
		return openMongo(ctx, config, log)
	case DriverMemory:
		log.Warn(ctx, "using in-memory storage, data is lost on restart")
		return NewMemoryStorage(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", config.StorageDriver)
	}
}

// NewMemoryStorage returns empty process-local stores
func NewMemoryStorage() *Storage {
	users := memory.NewUsersRepository()
	posts := memory.NewPostsRepository(users)
	return &Storage{Posts: posts, Users: users, Health: posts}
}

func openPostgres(ctx context.Context, config Config, log logger.Logger) (*Storage, func(), error) {
	pool, cleanup, err := ConnectDatabase(ctx, config, log)
	if err != nil {
		return nil, nil, err
	}

	if config.RunMigrations {
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return &Storage{
		Posts:  pgadapter.NewPostRepository(pool),
		Users:  pgadapter.NewUserRepository(pool),
		Health: pool,
	}, cleanup, nil
}

func openMongo(ctx context.Context, config Config, log logger.Logger) (*Storage, func(), error) {
	db, cleanup, err := ConnectMongo(ctx, config, log)
	if err != nil {
		return nil, nil, err
	}

	if err := mongoadapter.EnsureIndexes(ctx, db); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return &Storage{
		Posts:  mongoadapter.NewPostRepository(db),
		Users:  mongoadapter.NewUserRepository(db),
		Health: mongoChecker{db.Client()},
	}, cleanup, nil
}

type mongoChecker struct{ client *mongo.Client }

func (c mongoChecker) Ping(ctx context.Context) error { return c.client.Ping(ctx, readpref.Primary()) }

func providePostRepository(s *Storage) postsports.PostRepository { return s.Posts }

func provideUserRepository(s *Storage) usersports.UserRepository { return s.Users }

func provideHealthChecker(s *Storage) rest.HealthChecker { return s.Health }
