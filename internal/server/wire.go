//go:build wireinject
// +build wireinject

package server

import (
	"context"

	"github.com/google/wire"
	"github.com/philly/postboard/internal/adapters/rest"
	"github.com/philly/postboard/internal/adapters/rest/middleware"
	"github.com/philly/postboard/internal/platform/eventbus"
	"github.com/philly/postboard/internal/platform/logger"
	postsapp "github.com/philly/postboard/internal/posts/application"
	usersapp "github.com/philly/postboard/internal/users/application"
)

// InitializeApp creates a fully configured App with all dependencies
func InitializeApp(ctx context.Context) (*App, func(), error) {
	wire.Build(
		// Bootstrap phase
		logger.ProviderSet,
		LoadConfig,
		provideLoggerConfig,

		// Storage selected by STORAGE_DRIVER
		OpenStorage,
		providePostRepository,
		provideUserRepository,
		provideHealthChecker,

		// Platform services
		eventbus.ProviderSet,

		// Application services
		postsapp.ProviderSet,
		usersapp.ProviderSet,

		// REST handlers
		rest.ProviderSet,
		provideVersion, // Provide version string for HealthHandler

		// Auth middleware
		provideJWTConfig,
		middleware.ProviderSet,

		// HTTP Server
		NewRouter,
		NewHTTPServer,

		// App
		NewApp,
	)

	return nil, nil, nil
}
