package controllers

import (
	"learntrack/middleware"
	"learntrack/models"
	"learntrack/services"
	"learntrack/utils"

	"github.com/gofiber/fiber/v2"
)

type ProgressController struct {
	Service *services.ProgressService
}

func NewProgressController(service *services.ProgressService) *ProgressController {
	return &ProgressController{Service: service}
}

// TrackLessons godoc
// @Summary Track completed lessons
// @Description Records a batch of completed lessons for the current user and advances chapter, course and achievement progress
// @Tags user
// @Accept json
// @Param completions body []models.CompletedLessonRequest true "Completed lessons"
// @Success 204
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /user/lessons [post]
func (pc *ProgressController) TrackLessons(c *fiber.Ctx) error {
	var completions []models.CompletedLessonRequest
	if err := c.BodyParser(&completions); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if fieldErrors := validateCompletions(completions); len(fieldErrors) > 0 {
		return utils.ValidationFailed(c, fieldErrors)
	}

	userID := middleware.CurrentUserID(c)
	if err := pc.Service.Track(c.UserContext(), userID, completions); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
