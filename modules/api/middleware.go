package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	domain "github.com/example/enoma/domain/user"
	"github.com/example/enoma/modules/auth"
)

const (
	// UserContextKey is the key used to store user claims in the Fiber context.
	UserContextKey = "user"

	// AuthCookieName is the session cookie carrying the JWT.
	AuthCookieName = "auth-token"
)

// extractToken pulls the session token from the auth cookie, falling back to
// an Authorization bearer header.
func extractToken(c *fiber.Ctx) string {
	if token := c.Cookies(AuthCookieName); token != "" {
		return token
	}

	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// AuthMiddleware creates a middleware that requires a valid session token.
func AuthMiddleware(authAdapter auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error: "Authentication required",
			})
		}

		claims, err := authAdapter.ValidateToken(c.UserContext(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error: "Invalid or expired token",
			})
		}

		c.Locals(UserContextKey, claims)
		return c.Next()
	}
}

// OptionalAuthMiddleware attaches claims when a valid token is present but
// never rejects the request.
func OptionalAuthMiddleware(authAdapter auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := extractToken(c); token != "" {
			if claims, err := authAdapter.ValidateToken(c.UserContext(), token); err == nil {
				c.Locals(UserContextKey, claims)
			}
		}
		return c.Next()
	}
}

// AdminMiddleware requires the authenticated user to hold the admin role.
// It must run after AuthMiddleware.
func AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(UserContextKey).(*domain.Claims)
		if !ok || !claims.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
				Error: "Admin access required",
			})
		}
		return c.Next()
	}
}

// claimsFromContext returns the claims set by the auth middleware, or nil.
func claimsFromContext(c *fiber.Ctx) *domain.Claims {
	claims, _ := c.Locals(UserContextKey).(*domain.Claims)
	return claims
}
