package handlers

import (
	"errors"

	"microblog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// statusFromError maps service-layer sentinel errors to HTTP status codes.
// Anything unrecognized is a 500.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrSelfFollow),
		errors.Is(err, services.ErrInvalidPage),
		errors.Is(err, services.ErrInvalidContent):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrEmailTaken), errors.Is(err, services.ErrNameTaken):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// errorJSON renders the standard error envelope with the status derived
// from the error kind.
func errorJSON(c *fiber.Ctx, message string, err error) error {
	return c.Status(statusFromError(err)).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
