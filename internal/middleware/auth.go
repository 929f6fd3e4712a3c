// internal/middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/questcamp/quest-platform-be/internal/models"
	"github.com/questcamp/quest-platform-be/internal/utils"
	zlog "github.com/rs/zerolog/log"
)

// Protected ensures the request carries a valid JWT. Must run before any
// handler that needs the authenticated user.
func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := utils.ExtractToken(c)
		if tokenString == "" {
			zlog.Warn().Str("path", c.Path()).Str("ip", c.IP()).Msg("Protected route access attempt without token")
			return c.Status(fiber.StatusUnauthorized).JSON(models.Response{
				Success: false, Message: "Unauthorized: Missing token",
			})
		}

		claims, err := utils.ValidateJWT(tokenString)
		if err != nil {
			zlog.Warn().Err(err).Str("path", c.Path()).Str("ip", c.IP()).Msg("Protected route access attempt with invalid token")
			return c.Status(fiber.StatusUnauthorized).JSON(models.Response{
				Success: false, Message: "Unauthorized: Invalid token",
			})
		}

		c.Locals("user", claims)
		zlog.Debug().Str("user_id", claims.UserID).Str("role", claims.Role).Msg("JWT authenticated, proceeding")
		return c.Next()
	}
}

// Authorize checks that the authenticated user has one of the allowed
// roles. Must run after Protected so the claims are already in the context.
func Authorize(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("user").(*utils.JwtClaims)
		if !ok {
			zlog.Error().Str("path", c.Path()).Str("ip", c.IP()).Msg("User claims not found in context during authorization. Ensure Protected middleware runs first.")
			return c.Status(fiber.StatusForbidden).JSON(models.Response{
				Success: false, Message: "Forbidden: Cannot determine user role",
			})
		}

		isAllowed := false
		for _, role := range allowedRoles {
			if strings.EqualFold(claims.Role, role) {
				isAllowed = true
				break
			}
		}

		if !isAllowed {
			zlog.Warn().Str("user_id", claims.UserID).Str("user_role", claims.Role).Strs("required_roles", allowedRoles).Str("path", c.Path()).Msg("Authorization failed: User role not permitted")
			return c.Status(fiber.StatusForbidden).JSON(models.Response{
				Success: false, Message: "Forbidden: Insufficient privileges",
			})
		}

		return c.Next()
	}
}
