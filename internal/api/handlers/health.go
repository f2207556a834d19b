// HTTP handlers for the unauthenticated endpoints: /health and the
// service banner at /.
package handlers

import (
	"net/http"

	"github.com/devplanhq/plangate/internal/domain/health"
	"github.com/devplanhq/plangate/internal/version"
)

// HealthHandler serves /health and the root banner.
type HealthHandler struct {
	reporter *health.Reporter
}

// NewHealthHandler creates a HealthHandler over the reporter.
func NewHealthHandler(reporter *health.Reporter) *HealthHandler {
	return &HealthHandler{reporter: reporter}
}

// Health handles GET /health. No authentication: health must be
// diagnosable even when no keys are configured.
func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.reporter.Snapshot())
}

// Banner handles GET /.
func (h *HealthHandler) Banner(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "plangate: authenticated multi-provider AI dispatch gateway",
		"status":  "ok",
		"version": version.Version,
		"docs":    "/health",
	})
}
