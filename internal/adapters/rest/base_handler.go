package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/philly/postboard/internal/adapters/api"
	"github.com/philly/postboard/internal/platform/apperror"
	"github.com/philly/postboard/internal/platform/identity"
	"github.com/philly/postboard/internal/platform/logger"
	"github.com/philly/postboard/internal/platform/validator"
	postsapp "github.com/philly/postboard/internal/posts/application"
)

// ErrInvalidBody is returned when a request body is not valid JSON.
var ErrInvalidBody = apperror.New(
	apperror.CodeValidationFailed,
	apperror.BusinessCodeInvalidFormat,
	"invalid request body",
	http.StatusBadRequest,
)

// ErrInvalidParameter is returned when a path parameter fails to bind.
var ErrInvalidParameter = apperror.New(
	apperror.CodeValidationFailed,
	apperror.BusinessCodeInvalidFormat,
	"invalid request parameters",
	http.StatusBadRequest,
)

// BaseHandler contains common dependencies and helper methods for all handlers
type BaseHandler struct {
	logger logger.Logger
}

// NewBaseHandler creates a new base handler with common dependencies
func NewBaseHandler(logger logger.Logger) *BaseHandler {
	return &BaseHandler{
		logger: logger,
	}
}

// WriteJSONError writes an api.Error body
func (h *BaseHandler) WriteJSONError(w http.ResponseWriter, r *http.Request, code string, message string, statusCode int) {
	h.writeError(w, r, api.Error{Error: code, Message: message}, statusCode)
}

// WriteJSONResponse writes a successful JSON response
func (h *BaseHandler) WriteJSONResponse(w http.ResponseWriter, r *http.Request, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error(r.Context(), "failed to encode response",
			"error", err,
			"status_code", statusCode,
		)
	}
}

// HandleError converts err into an API error response. AppErrors keep their
// code and status; anything else becomes an opaque 500. Causes are logged,
// never written to the client.
func (h *BaseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.As(err)
	if !ok {
		h.logger.Error(r.Context(), "unhandled error", "error", err, "path", r.URL.Path)
		h.WriteJSONError(w, r, string(apperror.CodeInternalError), "server error", http.StatusInternalServerError)
		return
	}

	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed",
			"error", appErr.Message,
			"cause", appErr.Inner,
			"business_code", appErr.BusinessCode,
			"path", r.URL.Path,
		)
	}

	bizCode := string(appErr.BusinessCode)
	h.writeError(w, r, api.Error{
		Error:        string(appErr.Code),
		BusinessCode: &bizCode,
		Message:      appErr.Message,
		Context:      appErr.Details,
	}, appErr.HTTPStatus)
}

// HandleParamError is the ErrorHandlerFunc for parameter binding failures.
// A post id that is not a uuid names no post, so it is reported as not found.
func (h *BaseHandler) HandleParamError(w http.ResponseWriter, r *http.Request, err error) {
	var paramErr *api.InvalidParamFormatError
	if !errors.As(err, &paramErr) {
		h.HandleError(w, r, ErrInvalidParameter)
		return
	}
	if paramErr.ParamName == "id" {
		h.HandleError(w, r, postsapp.ErrPostNotFound)
		return
	}
	h.HandleError(w, r, ErrInvalidParameter.WithDetails(map[string]string{
		paramErr.ParamName: "invalid format",
	}))
}

// DecodeAndValidate reads a JSON body into dst and checks its validate tags.
func (h *BaseHandler) DecodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return ErrInvalidBody.WithCause(err)
	}
	return validator.Struct(dst)
}

// GetUserIDFromContext returns the identity attached by the auth chain.
// It panics when called on a route without authentication, which is a
// wiring bug rather than a client error.
func (h *BaseHandler) GetUserIDFromContext(r *http.Request) identity.UserID {
	id, ok := identity.FromContext(r.Context())
	if !ok {
		panic("rest: no authenticated identity in request context")
	}
	return id
}

func (h *BaseHandler) writeError(w http.ResponseWriter, r *http.Request, body api.Error, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error(r.Context(), "failed to encode error response",
			"error", err,
			"error_code", body.Error,
			"status_code", statusCode,
		)
	}
}
