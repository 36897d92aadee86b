package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Check probes one dependency, e.g. a database ping.
type Check func(ctx context.Context) error

// Health reports liveness together with the state of the configured
// dependencies.  Load balancers get 200 when every check passes and 503
// otherwise.
type Health struct {
	checks map[string]Check
}

// NewHealth builds a Health handler.  Nil checks are ignored.
func NewHealth(checks map[string]Check) *Health {
	h := &Health{checks: map[string]Check{}}
	for name, fn := range checks {
		if fn != nil {
			h.checks[name] = fn
		}
	}
	return h
}

// Get handles GET /healthz.
func (h *Health) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	deps := map[string]string{}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			deps[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}
	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}
	return c.JSON(status, echo.Map{"status": state, "checks": deps})
}
