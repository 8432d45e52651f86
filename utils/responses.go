package utils

import (
	"learntrack/models"

	"github.com/gofiber/fiber/v2"
)

// Response helpers producing the {message, errors} envelope. Only validation
// failures carry field entries in the errors map.

func BadRequest(c *fiber.Ctx, message string) error {
	return envelope(c, fiber.StatusBadRequest, message, map[string]string{})
}

func ValidationFailed(c *fiber.Ctx, fieldErrors map[string]string) error {
	return envelope(c, fiber.StatusBadRequest, "Bad Request", fieldErrors)
}

func NotFound(c *fiber.Ctx, message string) error {
	return envelope(c, fiber.StatusNotFound, message, map[string]string{})
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return envelope(c, fiber.StatusUnauthorized, message, map[string]string{})
}

func InternalServerError(c *fiber.Ctx) error {
	return envelope(c, fiber.StatusInternalServerError, "An unexpected error occurred.", map[string]string{})
}

func envelope(c *fiber.Ctx, status int, message string, fieldErrors map[string]string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Message: message,
		Errors:  fieldErrors,
	})
}
