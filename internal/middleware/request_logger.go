package middleware

import (
	"log/slog"
	"time"

	"catalog/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// RequestLogger logs one line per request and records HTTP metrics.
// Metrics are labelled with the matched route pattern, not the raw path.
func RequestLogger(log *slog.Logger, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// let the app error handler write the response before we read the status
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path

		m.ObserveHTTP(c.Method(), route, status, elapsed)

		level := slog.LevelInfo
		switch {
		case status >= fiber.StatusInternalServerError:
			level = slog.LevelError
		case status >= fiber.StatusBadRequest:
			level = slog.LevelWarn
		}
		log.Log(c.UserContext(), level, "request",
			"request_id", c.Locals(requestid.ConfigDefault.ContextKey),
			"method", c.Method(),
			"path", c.Path(),
			"route", route,
			"status", status,
			"latency", elapsed.String(),
			"ip", c.IP(),
		)
		return nil
	}
}
