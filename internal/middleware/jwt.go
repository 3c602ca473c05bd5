package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/tijara/storefront-service/internal/auth"
)

type Claims struct {
	StoreID string `json:"store_id"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// JWT validates the bearer token and scopes the request to the store in
// its claims. Tokens are issued by the external identity service; this
// service only verifies them.
func JWT(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing token"})
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}
		if claims.StoreID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing store context"})
		}

		auth.SetUser(c, auth.UserContext{
			StoreID: claims.StoreID,
			UserID:  claims.Subject,
			Role:    claims.Role,
		})
		return c.Next()
	}
}
