package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	ready func() bool
}

// NewHealthHandler creates a new HealthHandler. The ready func reports
// whether the server has finished wiring its pipeline.
func NewHealthHandler(ready func() bool) *HealthHandler {
	if ready == nil {
		ready = func() bool { return true }
	}
	return &HealthHandler{ready: ready}
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz returns 200 once the pipeline is wired, 503 before that.
func (h *HealthHandler) Readyz(c echo.Context) error {
	if !h.ready() {
		return c.JSON(
			http.StatusServiceUnavailable,
			map[string]string{"status": "unavailable"},
		)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
