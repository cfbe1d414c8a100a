package handlers

import (
	"errors"
	"log/slog"

	"catalog/internal/repositories"
	"catalog/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Response messages shared by every handler.
const (
	MsgValidationError = "Validation error"
	MsgInvalidBody     = "Invalid request body"
	MsgNotFound        = "Product not found"
	MsgServerError     = "Server error"
	MsgRouteNotFound   = "Route not found"
)

func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func respondValidation(c *fiber.Ctx, verr *validation.Errors) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": MsgValidationError,
		"errors":  verr.Fields,
	})
}

func respondServerError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": MsgServerError,
		"error":   err.Error(),
	})
}

// respondServiceError maps a service error onto the uniform error body.
func respondServiceError(c *fiber.Ctx, log *slog.Logger, err error) error {
	if verr, ok := validation.AsErrors(err); ok {
		return respondValidation(c, verr)
	}
	if errors.Is(err, repositories.ErrProductNotFound) {
		return respondError(c, fiber.StatusNotFound, MsgNotFound)
	}
	log.ErrorContext(c.UserContext(), "product request failed",
		"method", c.Method(), "path", c.Path(), "error", err)
	return respondServerError(c, err)
}

// ErrorHandler renders errors that escaped a handler in the same JSON shape.
func ErrorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			if fe.Code == fiber.StatusNotFound {
				return respondError(c, fe.Code, MsgRouteNotFound)
			}
			return respondError(c, fe.Code, fe.Message)
		}
		log.ErrorContext(c.UserContext(), "unhandled error", "method", c.Method(), "path", c.Path(), "error", err)
		return respondServerError(c, err)
	}
}
