package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler serves the capability listing, the health check and the 404 fallback.
type SystemHandler struct {
	version string
	store   Pinger
	log     *slog.Logger
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(version string, store Pinger, log *slog.Logger) *SystemHandler {
	return &SystemHandler{version: version, store: store, log: log}
}

// HandleRoot lists the API capabilities.
func (h *SystemHandler) HandleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Products API is running",
		"version": h.version,
		"endpoints": fiber.Map{
			"products": fiber.Map{
				"GET /api/products":        "List products",
				"GET /api/products/:id":    "Get a product by ID",
				"POST /api/products":       "Create a product",
				"PUT /api/products/:id":    "Update a product",
				"DELETE /api/products/:id": "Delete a product",
			},
		},
	})
}

// HandleHealth pings the store.
func (h *SystemHandler) HandleHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status, store, code := "healthy", "connected", fiber.StatusOK
	if err := h.store.Ping(ctx); err != nil {
		h.log.WarnContext(ctx, "health check failed", "error", err)
		status, store, code = "unhealthy", err.Error(), fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
		"store":  store,
	})
}

// HandleNotFound answers every unmatched route.
func (h *SystemHandler) HandleNotFound(c *fiber.Ctx) error {
	return respondError(c, fiber.StatusNotFound, MsgRouteNotFound)
}
