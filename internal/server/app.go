package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/philly/postboard/internal/platform/eventbus"
	"github.com/philly/postboard/internal/platform/logger"
	postsapp "github.com/philly/postboard/internal/posts/application"
)

type App struct {
	server *http.Server
	config Config
	bus    *eventbus.Bus
	log    logger.Logger
}

// NewApp assembles the runnable application. The audit log is taken so its
// subscriptions exist before the first request.
func NewApp(server *http.Server, config Config, bus *eventbus.Bus, _ *postsapp.AuditLog, log logger.Logger) *App {
	return &App{
		server: server,
		config: config,
		bus:    bus,
		log:    log,
	}
}

// Run starts the application and handles graceful shutdown
func (a *App) Run() error {
	ctx := context.Background()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		a.log.Info(ctx, "starting server",
			"address", a.server.Addr,
			"environment", a.config.Environment,
			"storage_driver", a.config.StorageDriver,
		)
		serverErrors <- a.server.ListenAndServe()
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-sigChan:
		a.log.Info(ctx, "shutting down server", "signal", sig.String())

		// Graceful shutdown with timeout
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to gracefully shutdown server: %w", err)
		}
	}

	// Let in-flight event handlers finish before storage is closed
	a.bus.Wait()

	a.log.Info(ctx, "server stopped")
	return nil
}
