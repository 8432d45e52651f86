package middleware

import (
	"errors"

	"learntrack/models"
	"learntrack/services"
	"learntrack/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler maps service errors to the response envelope. Internal
// not-found errors are reference-data corruption: full detail goes to the
// log, the caller only sees a generic failure.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var internalNotFound *services.InternalNotFoundError
		if errors.As(err, &internalNotFound) {
			log.Error("reference data lookup failed",
				zap.String("entity", internalNotFound.Entity),
				zap.String("id", internalNotFound.ID),
			)
			return utils.InternalServerError(c)
		}

		var notFound *services.NotFoundError
		if errors.As(err, &notFound) {
			return utils.NotFound(c, notFound.Error())
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(models.ErrorResponse{
				Message: fiberErr.Message,
				Errors:  map[string]string{},
			})
		}

		log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		return utils.InternalServerError(c)
	}
}
