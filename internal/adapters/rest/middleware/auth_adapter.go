package middleware

import (
	"errors"
	"net/http"

	"github.com/philly/postboard/internal/platform/identity"
	"github.com/philly/postboard/internal/platform/logger"
	"github.com/philly/postboard/internal/users/ports"
)

// AuthAdapter resolves the token subject to the internal user and attaches
// that user's identity to the request. It must be placed AFTER JWTMiddleware.
//
// NOTE: this costs one user lookup per authenticated request.
type AuthAdapter struct {
	userRepo ports.UserRepository
	logger   logger.Logger
}

// NewAuthAdapter creates a new authentication adapter
func NewAuthAdapter(userRepo ports.UserRepository, logger logger.Logger) *AuthAdapter {
	return &AuthAdapter{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (a *AuthAdapter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		subject, ok := GetJWTSubject(ctx)
		if !ok {
			a.logger.Warn(ctx, "subject not found in context")
			WriteJSONError(w, ErrorCodeUnauthorized, "Authentication required", http.StatusUnauthorized)
			return
		}

		user, err := a.userRepo.FindByExternalID(ctx, subject)
		if err != nil {
			if errors.Is(err, ports.ErrUserNotFound) {
				a.logger.Warn(ctx, "no user profile for subject", "subject", subject)
				WriteJSONError(w, ErrorCodeUnauthorized, "User profile not found", http.StatusUnauthorized)
				return
			}
			a.logger.Error(ctx, "failed to resolve user by subject",
				"subject", subject,
				"error", err,
			)
			WriteJSONError(w, ErrorCodeInternalServerError, "Failed to resolve user", http.StatusInternalServerError)
			return
		}

		ctx = identity.WithUserID(ctx, user.Identity())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
