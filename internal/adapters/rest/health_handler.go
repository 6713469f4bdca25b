package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/philly/postboard/internal/adapters/api"
)

// HealthChecker reports whether the active store is reachable
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	*BaseHandler
	version string
	checker HealthChecker // nil means no dependency to check
}

func NewHealthHandler(base *BaseHandler, version string, checker HealthChecker) *HealthHandler {
	return &HealthHandler{
		BaseHandler: base,
		version:     version,
		checker:     checker,
	}
}

// GetLiveness implements the liveness check endpoint
// This is a lightweight check with no external dependencies
func (h *HealthHandler) GetLiveness(w http.ResponseWriter, r *http.Request) {
	response := api.HealthStatus{
		Status:    api.Healthy,
		Timestamp: time.Now(),
		Version:   &h.version,
	}

	h.WriteJSONResponse(w, r, response, http.StatusOK)
}

// GetReadiness implements the readiness check endpoint
// This checks all critical dependencies
func (h *HealthHandler) GetReadiness(w http.ResponseWriter, r *http.Request) {
	status := api.Healthy
	httpStatus := http.StatusOK

	var checks *struct {
		Database *api.HealthStatusChecksDatabase `json:"database,omitempty"`
	}

	if h.checker != nil {
		checks = &struct {
			Database *api.HealthStatusChecksDatabase `json:"database,omitempty"`
		}{}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		dbStatus := api.Up
		if err := h.checker.Ping(ctx); err != nil {
			h.logger.Warn(r.Context(), "readiness check failed", "error", err)
			dbStatus = api.Down
			status = api.Unhealthy
			httpStatus = http.StatusServiceUnavailable
		}
		checks.Database = &dbStatus
	} else {
		status = api.Degraded
	}

	response := api.HealthStatus{
		Status:    status,
		Timestamp: time.Now(),
		Version:   &h.version,
		Checks:    checks,
	}

	h.WriteJSONResponse(w, r, response, httpStatus)
}
