package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lestrrat-go/httprc/v3"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

var (
	ErrMissingToken   = errors.New("missing authentication token")
	ErrInvalidToken   = errors.New("invalid authentication token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrMissingSubject = errors.New("missing subject in token")
)

type jwtContextKey string

const (
	JWTSubjectContextKey jwtContextKey = "jwt_subject"
	JWTEmailContextKey   jwtContextKey = "jwt_email"
)

// keyFunc yields the verification option for one request.
type keyFunc func(ctx context.Context) (jwt.ParseOption, error)

// JWTMiddleware verifies bearer tokens and stores the subject in the request
// context. It knows nothing about internal users; AuthAdapter does that.
type JWTMiddleware struct {
	issuer string
	key    keyFunc
}

// NewJWTMiddleware verifies tokens against a remote JWKS that is cached and
// refreshed in the background.
func NewJWTMiddleware(ctx context.Context, jwksEndpoint string, issuer string) (*JWTMiddleware, error) {
	cache, err := jwk.NewCache(ctx, httprc.NewClient())
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	if err := cache.Register(ctx, jwksEndpoint); err != nil {
		return nil, fmt.Errorf("failed to register JWKS URL: %w", err)
	}

	// Perform initial fetch to validate the URL
	if _, err := cache.Lookup(ctx, jwksEndpoint); err != nil {
		return nil, fmt.Errorf("failed to fetch initial JWKS: %w", err)
	}

	return &JWTMiddleware{
		issuer: issuer,
		key: func(ctx context.Context) (jwt.ParseOption, error) {
			keySet, err := cache.Lookup(ctx, jwksEndpoint)
			if err != nil {
				return nil, err
			}
			return jwt.WithKeySet(keySet), nil
		},
	}, nil
}

// NewHMACJWTMiddleware verifies HS256 tokens signed with a shared secret.
// Intended for local development and tests.
func NewHMACJWTMiddleware(secret []byte, issuer string) (*JWTMiddleware, error) {
	if len(secret) == 0 {
		return nil, errors.New("JWT secret must not be empty")
	}
	opt := jwt.WithKey(jwa.HS256(), secret)
	return &JWTMiddleware{
		issuer: issuer,
		key: func(context.Context) (jwt.ParseOption, error) {
			return opt, nil
		},
	}, nil
}

func (m *JWTMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Extract token from Authorization header
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			WriteJSONError(w, ErrorCodeUnauthorized, ErrMissingToken.Error(), http.StatusUnauthorized)
			return
		}

		// Remove "Bearer " prefix
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			WriteJSONError(w, ErrorCodeUnauthorized, "Invalid authorization header format", http.StatusUnauthorized)
			return
		}

		keyOpt, err := m.key(r.Context())
		if err != nil {
			WriteJSONError(w, ErrorCodeInternalServerError, "Failed to load verification keys", http.StatusInternalServerError)
			return
		}

		// Parse and validate the token
		token, err := jwt.ParseString(
			tokenString,
			keyOpt,
			jwt.WithValidate(true),
			jwt.WithIssuer(m.issuer),
			jwt.WithAcceptableSkew(30*time.Second),
		)
		if err != nil {
			if isExpired(err) {
				WriteJSONError(w, ErrorCodeTokenExpired, ErrTokenExpired.Error(), http.StatusUnauthorized)
				return
			}
			WriteJSONError(w, ErrorCodeInvalidToken, ErrInvalidToken.Error(), http.StatusUnauthorized)
			return
		}

		var subject string
		if err := token.Get("sub", &subject); err != nil || subject == "" {
			WriteJSONError(w, ErrorCodeInvalidToken, ErrMissingSubject.Error(), http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), JWTSubjectContextKey, subject)

		// Email is optional; not every provider shares it
		var email string
		if err := token.Get("email", &email); err == nil && email != "" {
			ctx = context.WithValue(ctx, JWTEmailContextKey, email)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func isExpired(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, `"exp" not satisfied`) ||
		strings.Contains(msg, "exp not satisfied") ||
		strings.Contains(msg, "expired")
}

// GetJWTSubject extracts the token subject set by JWTMiddleware
func GetJWTSubject(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(JWTSubjectContextKey).(string)
	return subject, ok
}

// GetJWTEmail extracts the token email claim set by JWTMiddleware
func GetJWTEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(JWTEmailContextKey).(string)
	return email, ok
}
