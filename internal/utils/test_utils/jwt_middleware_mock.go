// internal/utils/test_utils/jwt_middleware_mock.go
package test_utils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/questcamp/quest-platform-be/internal/utils"
)

// MockJWTMiddleware simulates the JWT authentication middleware by setting
// fixed claims in the Fiber context.
func MockJWTMiddleware(userID string, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := &utils.JwtClaims{
			UserID: userID,
			Role:   role,
		}
		c.Locals("user", claims)
		return c.Next()
	}
}
