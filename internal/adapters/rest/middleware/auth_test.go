package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
	"github.com/philly/postboard/internal/adapters/memory"
	"github.com/philly/postboard/internal/adapters/rest/middleware"
	"github.com/philly/postboard/internal/platform/identity"
	"github.com/philly/postboard/internal/platform/logger"
	"github.com/philly/postboard/internal/users/domain"
	"github.com/philly/postboard/internal/users/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer = "https://auth.postboard.test"
	testSecret = "0123456789abcdef0123456789abcdef"
)

func signToken(t *testing.T, secret, issuer, subject string, expires time.Time) string {
	t.Helper()
	builder := jwt.NewBuilder().
		Issuer(issuer).
		IssuedAt(time.Now().Add(-time.Minute)).
		Expiration(expires)
	if subject != "" {
		builder = builder.Subject(subject)
	}
	tok, err := builder.Build()
	require.NoError(t, err)
	require.NoError(t, tok.Set("email", "alice@example.com"))

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256(), []byte(secret)))
	require.NoError(t, err)
	return string(signed)
}

func newJWT(t *testing.T) *middleware.JWTMiddleware {
	t.Helper()
	m, err := middleware.NewHMACJWTMiddleware([]byte(testSecret), testIssuer)
	require.NoError(t, err)
	return m
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestJWTMiddleware(t *testing.T) {
	valid := signToken(t, testSecret, testIssuer, "sub-alice", time.Now().Add(time.Hour))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK},
		{name: "missing header", wantStatus: http.StatusUnauthorized, wantCode: middleware.ErrorCodeUnauthorized},
		{name: "not bearer", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantCode: middleware.ErrorCodeUnauthorized},
		{name: "garbage", header: "Bearer not.a.jwt", wantStatus: http.StatusUnauthorized, wantCode: middleware.ErrorCodeInvalidToken},
		{
			name:       "wrong secret",
			header:     "Bearer " + signToken(t, "another-secret-another-secret-00", testIssuer, "sub-alice", time.Now().Add(time.Hour)),
			wantStatus: http.StatusUnauthorized,
			wantCode:   middleware.ErrorCodeInvalidToken,
		},
		{
			name:       "wrong issuer",
			header:     "Bearer " + signToken(t, testSecret, "https://evil.test", "sub-alice", time.Now().Add(time.Hour)),
			wantStatus: http.StatusUnauthorized,
			wantCode:   middleware.ErrorCodeInvalidToken,
		},
		{
			name:       "expired",
			header:     "Bearer " + signToken(t, testSecret, testIssuer, "sub-alice", time.Now().Add(-time.Hour)),
			wantStatus: http.StatusUnauthorized,
			wantCode:   middleware.ErrorCodeTokenExpired,
		},
		{
			name:       "no subject",
			header:     "Bearer " + signToken(t, testSecret, testIssuer, "", time.Now().Add(time.Hour)),
			wantStatus: http.StatusUnauthorized,
			wantCode:   middleware.ErrorCodeInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotSubject string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotSubject, _ = middleware.GetJWTSubject(r.Context())
				email, ok := middleware.GetJWTEmail(r.Context())
				assert.True(t, ok)
				assert.Equal(t, "alice@example.com", email)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			newJWT(t).Middleware(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, rec)["error"])
				assert.Empty(t, gotSubject)
			} else {
				assert.Equal(t, "sub-alice", gotSubject)
			}
		})
	}
}

func TestNewHMACJWTMiddleware_RequiresSecret(t *testing.T) {
	_, err := middleware.NewHMACJWTMiddleware(nil, testIssuer)
	assert.Error(t, err)
}

func TestProvideJWTMiddleware_FallsBackToSecret(t *testing.T) {
	m, err := middleware.ProvideJWTMiddleware(context.Background(), middleware.JWTConfig{Secret: testSecret, Issuer: testIssuer})
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestAuthAdapter(t *testing.T) {
	users := memory.NewUsersRepository()
	alice, err := domain.NewUser("sub-alice", "", "alice")
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), alice))

	adapter := middleware.NewAuthAdapter(users, logger.Nop{})

	tests := []struct {
		name       string
		subject    string
		wantStatus int
		wantID     identity.UserID
	}{
		{name: "known subject", subject: "sub-alice", wantStatus: http.StatusOK, wantID: alice.Identity()},
		{name: "unknown subject", subject: "sub-ghost", wantStatus: http.StatusUnauthorized},
		{name: "no subject", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got identity.UserID
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, _ = identity.FromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.subject != "" {
				req = req.WithContext(context.WithValue(req.Context(), middleware.JWTSubjectContextKey, tt.subject))
			}
			rec := httptest.NewRecorder()

			adapter.Middleware(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantID, got)
		})
	}
}

type brokenUsers struct{ ports.UserRepository }

func (brokenUsers) FindByExternalID(context.Context, string) (*domain.User, error) {
	return nil, errors.New("db down")
}

func (brokenUsers) FindByID(context.Context, uuid.UUID) (*domain.User, error) {
	return nil, errors.New("db down")
}

func TestAuthAdapter_StorageFailure(t *testing.T) {
	adapter := middleware.NewAuthAdapter(brokenUsers{}, logger.Nop{})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.JWTSubjectContextKey, "sub"))
	rec := httptest.NewRecorder()

	adapter.Middleware(http.NotFoundHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, middleware.ErrorCodeInternalServerError, decodeError(t, rec)["error"])
}
