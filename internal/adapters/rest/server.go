package rest

import (
	"github.com/philly/postboard/internal/adapters/api"
)

// Server combines all handlers to implement api.ServerInterface
type Server struct {
	*PostsHandler
	*UserHandler
	*HealthHandler
}

// NewServer creates a new server that implements api.ServerInterface
func NewServer(
	postsHandler *PostsHandler,
	userHandler *UserHandler,
	healthHandler *HealthHandler,
) *Server {
	return &Server{
		PostsHandler:  postsHandler,
		UserHandler:   userHandler,
		HealthHandler: healthHandler,
	}
}

// Ensure Server implements api.ServerInterface
var _ api.ServerInterface = (*Server)(nil)

// The methods are already implemented by the embedded handlers:
// - GetLiveness, GetReadiness (from HealthHandler)
// - ListPosts, CreatePost, GetPost, UpdatePost, DeletePost (from PostsHandler)
// - CreateUser, GetCurrentUser (from UserHandler)
