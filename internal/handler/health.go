package handler

import (
	"net/http"

	"github.com/portfolio/backend/internal/repository"
)

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HealthHandler reports API and database health.
type HealthHandler struct {
	gateway *repository.Gateway
}

// NewHealthHandler creates a HealthHandler using the given gateway.
func NewHealthHandler(gateway *repository.Gateway) *HealthHandler {
	return &HealthHandler{gateway: gateway}
}

// Health handles GET /api/health. Pinging through the gateway establishes
// the lazy connection on first call, so a cold process reports real
// database reachability rather than "ok".
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.gateway.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:  "unhealthy",
			Message: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Message: "Portfolio API",
	})
}
