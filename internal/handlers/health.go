package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/turnero/internal/feed"
)

// HealthResponse representa el estado de salud del sistema
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Version   string            `json:"version,omitempty"`
}

// Pinger es la parte del store que usa el health check
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	hub     *feed.Hub
	version string
}

// NewHealthHandler crea el health check. hub es nil si el feed está deshabilitado.
func NewHealthHandler(db Pinger, hub *feed.Hub, version string) *HealthHandler {
	return &HealthHandler{db: db, hub: hub, version: version}
}

// Health proporciona un health check del sistema
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	services := make(map[string]string)
	overall := "healthy"

	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		services["database"] = "unhealthy: " + err.Error()
		overall = "degraded"
	} else {
		services["database"] = "healthy"
	}

	if h.hub != nil {
		services["live_feed"] = "healthy"
	} else {
		services["live_feed"] = "disabled"
	}

	statusCode := fiber.StatusOK
	if overall == "degraded" {
		statusCode = fiber.StatusServiceUnavailable
	}

	return c.Status(statusCode).JSON(HealthResponse{
		Status:    overall,
		Timestamp: time.Now(),
		Services:  services,
		Version:   h.version,
	})
}
