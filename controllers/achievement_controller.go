package controllers

import (
	"learntrack/middleware"
	"learntrack/services"

	"github.com/gofiber/fiber/v2"
)

type AchievementController struct {
	Service *services.AchievementService
}

func NewAchievementController(service *services.AchievementService) *AchievementController {
	return &AchievementController{Service: service}
}

// GetAchievements godoc
// @Summary Get achievement progress
// @Description Returns only those achievements the current user has started tracking
// @Tags user
// @Produce json
// @Success 200 {array} models.AchievementResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /user/achievements [get]
func (ac *AchievementController) GetAchievements(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	achievements, err := ac.Service.GetUserAchievements(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(achievements)
}
