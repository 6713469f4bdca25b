package main

import (
	"context"
	"log"

	"github.com/philly/postboard/internal/platform/logger"
	"github.com/philly/postboard/internal/platform/seeder"
	postsapp "github.com/philly/postboard/internal/posts/application"
	postsseeder "github.com/philly/postboard/internal/posts/seeder"
	"github.com/philly/postboard/internal/server"
	usersapp "github.com/philly/postboard/internal/users/application"
)

func main() {
	ctx := context.Background()

	config, err := server.LoadConfig(logger.NewBootstrapLogger())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	appLogger := logger.NewSlogAdapter(config.Environment, config.LogLevel)

	storage, cleanup, err := server.OpenStorage(ctx, config, appLogger)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer cleanup()

	users := usersapp.NewUserService(storage.Users, appLogger)
	posts := postsapp.NewPostsService(storage.Posts, nil, appLogger)

	orchestrator := seeder.NewOrchestrator(appLogger,
		postsseeder.NewDemoSeeder(users, posts),
	)
	if err := orchestrator.RunAll(ctx); err != nil {
		appLogger.Error(ctx, "seeding failed", "error", err)
		cleanup()
		log.Fatal("exiting")
	}
}
