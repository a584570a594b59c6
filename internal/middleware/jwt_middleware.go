package middleware

import (
	"log"
	"strings"

	"microblog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CurrentUser is the authenticated identity extracted from a verified
// token. Handlers read it from the request locals instead of raw claims.
type CurrentUser struct {
	ID   string
	Name string
}

// CurrentUserKey is the locals key under which CurrentUser is stored.
const CurrentUserKey = "currentUser"

// AuthRequired is a Fiber middleware to check for a valid JWT token.
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

		tokenString := parts[1]

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		// A token without an identity claim is as useless as an invalid one.
		userID, _ := claims["user_id"].(string)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Token carries no user identity",
			})
		}
		name, _ := claims["name"].(string)

		// Store the typed identity in Fiber context for subsequent handlers
		c.Locals(CurrentUserKey, CurrentUser{ID: userID, Name: name})

		// Continue to the next handler
		return c.Next()
	}
}
