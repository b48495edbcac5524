package server

import (
	"errors"

	"edp-shifts/internal/credential"
	"edp-shifts/internal/session"
	"edp-shifts/internal/shift"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler maps fiber and domain errors to JSON {"error": msg} responses.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, msg := classify(err)
		if status == fiber.StatusInternalServerError {
			log.Error("unexpected error",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}
}

func classify(err error) (int, string) {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	case errors.Is(err, credential.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, "Invalid username or password"
	case errors.Is(err, session.ErrUnauthenticated):
		return fiber.StatusUnauthorized, "Authentication required"
	case errors.Is(err, session.ErrForbidden):
		return fiber.StatusForbidden, "You are not allowed to do this"
	case errors.Is(err, credential.ErrDuplicateUsername):
		return fiber.StatusConflict, "Username already exists"
	case errors.Is(err, credential.ErrUserNotFound):
		return fiber.StatusNotFound, "User not found"
	case errors.Is(err, shift.ErrNotFound):
		return fiber.StatusNotFound, "Shift not found"
	case errors.Is(err, credential.ErrInvalidRole),
		errors.Is(err, credential.ErrMissingFields),
		errors.Is(err, credential.ErrEmptyPassword),
		errors.Is(err, credential.ErrPasswordTooLong),
		errors.Is(err, shift.ErrInvalidFields):
		return fiber.StatusBadRequest, err.Error()
	default:
		return fiber.StatusInternalServerError, "Unexpected server error"
	}
}
