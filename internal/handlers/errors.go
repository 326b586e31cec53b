package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/fitmeal-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the app-wide fiber error handler. Client errors keep their
// message; server errors are logged and masked.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}
