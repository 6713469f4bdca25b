package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/philly/postboard/internal/adapters/api"
	"github.com/philly/postboard/internal/adapters/rest"
	"github.com/philly/postboard/internal/adapters/rest/middleware"
	"github.com/philly/postboard/internal/platform/identity"
	"github.com/philly/postboard/internal/platform/logger"
)

const apiBaseURL = "/api/v1"

// NewHTTPServer creates and configures the HTTP server with all routes
func NewHTTPServer(config Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         config.ServerAddress,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewRouter registers every API route behind the route-aware auth chain
func NewRouter(
	server api.ServerInterface,
	base *rest.BaseHandler,
	jwtMiddleware *middleware.JWTMiddleware,
	authAdapter *middleware.AuthAdapter,
	log logger.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	// Protected endpoints (JWT auth required, caller resolved to a profile)
	protectedMiddlewares := []api.MiddlewareFunc{
		wrapMiddleware(jwtMiddleware.Middleware),
		wrapMiddleware(authAdapter.Middleware),
	}

	// JWT-only endpoints (no AuthAdapter because user doesn't exist yet)
	jwtOnlyMiddlewares := []api.MiddlewareFunc{
		wrapMiddleware(jwtMiddleware.Middleware),
	}

	publicPatterns := map[string]bool{
		"GET " + apiBaseURL + "/health/live":  true,
		"GET " + apiBaseURL + "/health/ready": true,

		// Reading posts needs no identity
		"GET " + apiBaseURL + "/posts":      true,
		"GET " + apiBaseURL + "/posts/{id}": true,
	}

	specificPatterns := map[string][]api.MiddlewareFunc{
		"POST " + apiBaseURL + "/users": jwtOnlyMiddlewares,
	}

	// Register API routes on chi router with a route-aware middleware
	_ = api.HandlerWithOptions(server, api.ChiServerOptions{
		BaseURL:    apiBaseURL,
		BaseRouter: r,
		Middlewares: []api.MiddlewareFunc{
			routeAwareChiMiddleware(publicPatterns, specificPatterns, protectedMiddlewares),
		},
		ErrorHandlerFunc: base.HandleParamError,
	})

	// Request IDs are assigned outside the observability wrapper so its log line carries one
	return chimw.RequestID(withObservability(r, log))
}

// routeAwareChiMiddleware applies auth middlewares based on matched chi route pattern
func routeAwareChiMiddleware(
	public map[string]bool,
	specific map[string][]api.MiddlewareFunc,
	defaults []api.MiddlewareFunc,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		next = recordIdentity(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// chi exposes the current route pattern via RouteContext
			routeCtx := chi.RouteContext(r.Context())
			method := r.Method
			if method == http.MethodHead {
				method = http.MethodGet
			}
			pattern := ""
			if routeCtx != nil {
				pattern = method + " " + routeCtx.RoutePattern()
			}

			// Public endpoints bypass
			if public[pattern] {
				next.ServeHTTP(w, r)
				return
			}

			middlewares, ok := specific[pattern]
			if !ok {
				middlewares = defaults
			}

			handler := next
			for i := len(middlewares) - 1; i >= 0; i-- {
				handler = middlewares[i](handler)
			}
			handler.ServeHTTP(w, r)
		})
	}
}

// wrapMiddleware converts a standard middleware to oapi-codegen's MiddlewareFunc
func wrapMiddleware(mw func(http.Handler) http.Handler) api.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return mw(next)
	}
}

type requestUserKey struct{}

// recordIdentity copies the identity established by the auth chain into the
// slot created by withObservability, which only sees the outer request.
func recordIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if slot, ok := r.Context().Value(requestUserKey{}).(*identity.UserID); ok {
			if id, ok := identity.FromContext(r.Context()); ok {
				*slot = id
			}
		}
		next.ServeHTTP(w, r)
	})
}

// withObservability adds request logging
func withObservability(handler http.Handler, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		var userID identity.UserID
		r = r.WithContext(context.WithValue(r.Context(), requestUserKey{}, &userID))

		// Use chi's response writer wrapper to capture status code and bytes written
		wrr := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		handler.ServeHTTP(wrr, r)

		log.Info(r.Context(), "HTTP request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrr.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
			"user_id", userID.String(),
		)
	})
}
