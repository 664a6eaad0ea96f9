// middleware/auth.go - Parent-gate token validation
package middleware

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ParentTokenTTL is how long a verified parent PIN stays usable.
const ParentTokenTTL = 10 * time.Minute

// JWTSecret returns the signing secret for parent-gate tokens.
func JWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "zapzap-secret-change-in-production"
	}
	return []byte(secret)
}

// IssueParentToken creates a short-lived token proving the parent PIN was
// verified.
func IssueParentToken() (string, error) {
	claims := jwt.MapClaims{
		"scope": "parent",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(ParentTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret())
}

// ParentAuthMiddleware guards destructive operations (profile deletion)
// behind a valid parent token.
func ParentAuthMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Missing authorization header"})
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid authorization header format"})
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(401, "Invalid signing method")
		}
		return JWTSecret(), nil
	})
	if err != nil || !token.Valid {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid or expired token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["scope"] != "parent" {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid token claims"})
	}

	exp, ok := claims["exp"].(float64)
	if !ok || time.Unix(int64(exp), 0).Before(time.Now()) {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Token expired"})
	}

	return c.Next()
}
