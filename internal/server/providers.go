package server

import (
	"github.com/philly/postboard/internal/adapters/rest/middleware"
	"github.com/philly/postboard/internal/platform/logger"
)

// provideVersion provides the application version
func provideVersion() string {
	return "1.0.0"
}

// provideLoggerConfig creates logger config from server config
func provideLoggerConfig(config Config) logger.Config {
	return logger.Config{
		Environment: config.Environment,
		LogLevel:    config.LogLevel,
	}
}

// provideJWTConfig extracts the token verification settings
func provideJWTConfig(config Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		JWKS:   config.JWKSEndpoint,
		Secret: config.JWTSecret,
		Issuer: config.JWTIssuer,
	}
}
