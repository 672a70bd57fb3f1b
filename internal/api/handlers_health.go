package api

import (
	"context"
	"net/http"
	"time"

	"github.com/haletree/symptom-intake/server/internal/api/respond"
	"github.com/haletree/symptom-intake/server/internal/health"
)

// HealthHandler serves liveness and dependency health. The service-level
// endpoint reads the cached monitor state; the db endpoint probes the
// session store synchronously.
type HealthHandler struct {
	monitor *health.Monitor
	store   health.Pinger
}

func NewHealthHandler(monitor *health.Monitor, store health.Pinger) *HealthHandler {
	return &HealthHandler{monitor: monitor, store: store}
}

// CheckHealth GET /api/health
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	overall := "healthy"
	if h.monitor != nil && !h.monitor.Healthy() {
		status = http.StatusServiceUnavailable
		overall = "unhealthy"
	}
	body := map[string]interface{}{"status": overall}
	if h.monitor != nil {
		body["dependencies"] = h.monitor.Status()
	}
	respond.WriteJSON(w, status, body)
}

// CheckStorageHealth GET /api/health/db
func (h *HealthHandler) CheckStorageHealth(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.store.HealthPing(ctx); err != nil {
		respond.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
