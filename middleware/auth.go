package middleware

import (
	"strings"

	"learntrack/config"
	"learntrack/utils"

	"github.com/gofiber/fiber/v2"
)

const userIDKey = "userID"

// CurrentUser resolves the acting user for the request. Requests without an
// Authorization header act as the configured default user; a bearer token
// selects the user from its claims. Invalid tokens are rejected.
func CurrentUser(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			c.Locals(userIDKey, cfg.DefaultUserID)
			return c.Next()
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		userID, err := utils.ExtractUserIDFromToken(tokenString, cfg.JWTSecret)
		if err != nil {
			return utils.Unauthorized(c, "Invalid token")
		}

		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

func CurrentUserID(c *fiber.Ctx) int64 {
	if userID, ok := c.Locals(userIDKey).(int64); ok {
		return userID
	}
	return 0
}
