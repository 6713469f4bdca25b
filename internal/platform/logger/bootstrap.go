package logger

import (
	"context"
	"log"
	"os"
)

// BootstrapLogger is used while configuration is still loading.
// It has zero dependencies.
type BootstrapLogger struct {
	logger *log.Logger
}

// NewBootstrapLogger creates a simple logger for bootstrap phase
func NewBootstrapLogger() *BootstrapLogger {
	return &BootstrapLogger{
		logger: log.New(os.Stdout, "[BOOTSTRAP] ", log.LstdFlags),
	}
}

func (b *BootstrapLogger) Debug(ctx context.Context, msg string, args ...any) {
	b.print("DEBUG", msg, args)
}

func (b *BootstrapLogger) Info(ctx context.Context, msg string, args ...any) {
	b.print("INFO", msg, args)
}

func (b *BootstrapLogger) Warn(ctx context.Context, msg string, args ...any) {
	b.print("WARN", msg, args)
}

func (b *BootstrapLogger) Error(ctx context.Context, msg string, args ...any) {
	b.print("ERROR", msg, args)
}

func (b *BootstrapLogger) print(level, msg string, args []any) {
	if len(args) == 0 {
		b.logger.Printf("%s: %s", level, msg)
		return
	}
	b.logger.Printf("%s: %s %v", level, msg, args)
}

var _ Logger = (*BootstrapLogger)(nil)
