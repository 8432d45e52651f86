package routes

import (
	"learntrack/config"
	"learntrack/controllers"
	"learntrack/middleware"
	"learntrack/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, log *zap.Logger) {
	achievementService := services.NewAchievementService(db, log)
	progressService := services.NewProgressService(db, achievementService, log)

	currentUser := middleware.CurrentUser(cfg)

	progressController := controllers.NewProgressController(progressService)
	app.Post("/user/lessons", currentUser, progressController.TrackLessons)

	achievementController := controllers.NewAchievementController(achievementService)
	app.Get("/user/achievements", currentUser, achievementController.GetAchievements)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}
