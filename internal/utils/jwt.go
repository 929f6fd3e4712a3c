// internal/utils/jwt.go
package utils

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	zlog "github.com/rs/zerolog/log"
)

// JwtClaims is the token payload. User IDs come from the identity provider
// and are opaque strings.
type JwtClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// jwtSecret signs and verifies tokens. Read once at package load from the
// JWT_SECRET environment variable.
var jwtSecret = []byte(os.Getenv("JWT_SECRET"))

// GenerateJWT creates a signed token for a user. Production tokens are
// issued by the identity service with the shared secret; this is used by
// tests and tooling.
func GenerateJWT(userID, role string) (string, error) {
	expirationTime := time.Now().Add(72 * time.Hour)

	claims := JwtClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "quest-platform",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(jwtSecret)
	if err != nil {
		zlog.Error().Err(err).Msg("Error signing JWT token")
		return "", fmt.Errorf("error signing token: %w", err)
	}

	return signedToken, nil
}

// ValidateJWT verifies the signature and expiry of a token and returns its
// claims. Only HMAC-signed tokens are accepted.
func ValidateJWT(tokenString string) (*JwtClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JwtClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			zlog.Warn().Interface("algorithm", token.Header["alg"]).Msg("Unexpected signing method during JWT validation")
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})

	if err != nil {
		zlog.Warn().Err(err).Msg("Error parsing or validating JWT token")
		return nil, fmt.Errorf("error parsing token: %w", err)
	}

	if claims, ok := token.Claims.(*JwtClaims); ok && token.Valid {
		return claims, nil
	}

	zlog.Warn().Msg("Invalid token or claims after parsing")
	return nil, fmt.Errorf("invalid token")
}

// ExtractToken pulls the token out of the "Authorization: Bearer <token>"
// header. Returns the empty string when the header is missing or malformed.
func ExtractToken(c *fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}

	zlog.Warn().Str("AuthorizationHeader", authHeader).Msg("Invalid Authorization header format (Expected 'Bearer <token>')")
	return ""
}

// ExtractUserIDFromJWT reads the authenticated user ID stored in the Fiber
// context by the auth middleware.
func ExtractUserIDFromJWT(c *fiber.Ctx) (string, error) {
	claims, ok := c.Locals("user").(*JwtClaims)
	if !ok {
		zlog.Error().Str("path", c.Path()).Msg("Could not extract user claims from Fiber context (middleware issue?)")
		return "", fmt.Errorf("could not extract user claims from context")
	}
	return claims.UserID, nil
}

// ExtractRoleFromJWT reads the authenticated role from the Fiber context.
func ExtractRoleFromJWT(c *fiber.Ctx) (string, error) {
	claims, ok := c.Locals("user").(*JwtClaims)
	if !ok {
		zlog.Error().Str("path", c.Path()).Msg("Could not extract user claims from Fiber context (middleware issue?)")
		return "", fmt.Errorf("could not extract user claims from context")
	}
	return claims.Role, nil
}
