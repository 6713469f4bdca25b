package rest

import (
	"github.com/google/wire"
	"github.com/philly/postboard/internal/adapters/api"
)

// ProviderSet is the wire provider set for REST handlers
var ProviderSet = wire.NewSet(
	NewBaseHandler,
	NewPostsHandler,
	NewUserHandler,
	NewHealthHandler,
	NewServer, // Combined server that implements api.ServerInterface
	wire.Bind(new(api.ServerInterface), new(*Server)),
)
