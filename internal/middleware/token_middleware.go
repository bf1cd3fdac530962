package middleware

import (
	"strings"

	"recipebox/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserContextKey is the Locals key the authenticated user is stored under.
const UserContextKey = "current_user"

// AuthRequired is a Fiber middleware that resolves the bearer token to its
// owning user and stores it in the request context. Downstream handlers read
// the user from Locals and thread it into every service call.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		user, err := authService.UserForToken(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.Locals(UserContextKey, user)
		return c.Next()
	}
}
