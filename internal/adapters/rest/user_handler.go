package rest

import (
	"net/http"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/philly/postboard/internal/adapters/api"
	"github.com/philly/postboard/internal/adapters/rest/middleware"
	"github.com/philly/postboard/internal/users/application"
	"github.com/philly/postboard/internal/users/domain"
)

type UserHandler struct {
	*BaseHandler
	service *application.UserService
}

func NewUserHandler(base *BaseHandler, service *application.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		service:     service,
	}
}

// CreateUser registers the profile for the token subject. Only the JWT
// middleware runs in front of it, since the profile does not exist yet.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	subject, ok := middleware.GetJWTSubject(r.Context())
	if !ok {
		h.WriteJSONError(w, r, middleware.ErrorCodeUnauthorized, "Authentication required", http.StatusUnauthorized)
		return
	}
	email, _ := middleware.GetJWTEmail(r.Context())

	var req api.NewUserRequest
	if err := h.DecodeAndValidate(r, &req); err != nil {
		h.HandleError(w, r, err)
		return
	}

	user, err := h.service.CreateUser(r.Context(), application.CreateUserParams{
		ExternalID:  subject,
		Email:       email,
		Username:    req.Username,
		DisplayName: getStringValue(req.DisplayName),
	})
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainUserToAPI(user), http.StatusCreated)
}

// GetCurrentUser returns the profile of the identity resolved by the auth chain
func (h *UserHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID := h.GetUserIDFromContext(r)

	id, err := uuid.Parse(userID.String())
	if err != nil {
		h.HandleError(w, r, application.ErrUserNotFound)
		return
	}

	user, err := h.service.GetUserByID(r.Context(), id)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainUserToAPI(user), http.StatusOK)
}

// Helper function to convert domain User to API User
func domainUserToAPI(user *domain.User) api.User {
	apiUser := api.User{
		Id:          openapi_types.UUID(user.ID),
		Username:    user.Username,
		DisplayName: stringToPointer(user.DisplayName),
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
	if user.Email != "" {
		email := openapi_types.Email(user.Email)
		apiUser.Email = &email
	}
	return apiUser
}

// Helper function to convert *string to string
func getStringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Helper function to convert string to *string
func stringToPointer(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
