package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is anything whose reachability can be checked
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a plain function to Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// BreakerStates reports circuit breaker state per upstream
type BreakerStates interface {
	States() map[string]string
}

// HealthHandler reports dependency health. A failed store or cache check
// reports degraded; every upstream breaker open reports unhealthy.
type HealthHandler struct {
	checks    map[string]Pinger
	breakers  BreakerStates
	service   string
	version   string
	startTime time.Time
	logger    *logrus.Logger
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Service   string                 `json:"service"`
	Version   string                 `json:"version"`
	Uptime    string                 `json:"uptime"`
	Checks    map[string]HealthCheck `json:"checks"`
	Breakers  map[string]string      `json:"circuit_breakers,omitempty"`
}

// HealthCheck represents an individual health check
type HealthCheck struct {
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
	Latency   string    `json:"latency,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// NewHealthHandler creates a health handler. A nil entry in checks is
// reported as not configured.
func NewHealthHandler(service, version string, checks map[string]Pinger, breakers BreakerStates, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		checks:    checks,
		breakers:  breakers,
		service:   service,
		version:   version,
		startTime: time.Now(),
		logger:    logger,
	}
}

// GetHealth handles GET /health
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Service:   h.service,
		Version:   h.version,
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Checks:    make(map[string]HealthCheck, len(h.checks)),
	}

	for name, pinger := range h.checks {
		check := h.runCheck(ctx, pinger)
		if check.Status == "unhealthy" {
			response.Status = "degraded"
			h.logger.WithField("check", name).WithField("error", check.Message).Warn("Health check failed")
		}
		response.Checks[name] = check
	}

	status := http.StatusOK
	if h.breakers != nil {
		response.Breakers = h.breakers.States()
		if allOpen(response.Breakers) {
			response.Status = "unhealthy"
			status = http.StatusServiceUnavailable
		}
	}

	c.JSON(status, response)
}

func (h *HealthHandler) runCheck(ctx context.Context, pinger Pinger) HealthCheck {
	if pinger == nil {
		return HealthCheck{Status: "disabled", Message: "not configured", CheckedAt: time.Now()}
	}

	start := time.Now()
	err := pinger.Ping(ctx)
	check := HealthCheck{
		Status:    "healthy",
		Latency:   time.Since(start).String(),
		CheckedAt: time.Now(),
	}
	if err != nil {
		check.Status = "unhealthy"
		check.Message = err.Error()
	}
	return check
}

func allOpen(states map[string]string) bool {
	if len(states) == 0 {
		return false
	}
	for _, state := range states {
		if state != "open" {
			return false
		}
	}
	return true
}
