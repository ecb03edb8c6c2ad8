package middleware

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// GatewayAuthMiddleware validates the Bearer token forwarded by the API
// gateway. Authentication lives upstream; when API_SERVICE_TOKEN is unset the
// check is disabled and every request passes through.
func GatewayAuthMiddleware() fiber.Handler {
	expectedToken := os.Getenv("API_SERVICE_TOKEN")
	if expectedToken == "" {
		log.Println("⚠️  API_SERVICE_TOKEN not set — gateway auth disabled")
	}

	return func(c *fiber.Ctx) error {
		if expectedToken == "" {
			return c.Next()
		}

		authHeader := c.Get("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" || token != expectedToken {
			log.Printf("🚫 [GATEWAY_AUTH] Rejected request for %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid gateway authentication token",
			})
		}
		return c.Next()
	}
}
