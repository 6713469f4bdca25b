package middleware

import (
	"context"

	"github.com/google/wire"
)

// ProviderSet is the wire provider set for middleware components
var ProviderSet = wire.NewSet(
	ProvideJWTMiddleware,
	NewAuthAdapter,
)

// JWTConfig carries the minimal settings needed to construct the JWT middleware.
// JWKS takes precedence over Secret when both are set.
type JWTConfig struct {
	JWKS   string
	Secret string
	Issuer string
}

// ProvideJWTMiddleware creates JWT middleware from JWTConfig
func ProvideJWTMiddleware(ctx context.Context, cfg JWTConfig) (*JWTMiddleware, error) {
	if cfg.JWKS != "" {
		return NewJWTMiddleware(ctx, cfg.JWKS, cfg.Issuer)
	}
	return NewHMACJWTMiddleware([]byte(cfg.Secret), cfg.Issuer)
}
