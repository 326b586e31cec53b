package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	driver string
	ping   func() error
}

// NewHealthHandler reports on the configured store. ping may be nil for
// backends with nothing to probe.
func NewHealthHandler(driver string, ping func() error) *HealthHandler {
	return &HealthHandler{driver: driver, ping: ping}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	storeStatus := h.driver + ": ok"
	if h.ping != nil {
		if err := h.ping(); err != nil {
			storeStatus = h.driver + ": unhealthy: " + err.Error()
		}
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Store:     storeStatus,
	})
}
