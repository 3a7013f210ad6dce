package api

import (
	"strings"

	domain "github.com/MorenaPoli/todo-api/domain/user"
	"github.com/MorenaPoli/todo-api/modules/auth"
	"github.com/gofiber/fiber/v2"
)

const (
	// UserContextKey is the key used to store user claims in the Fiber context.
	UserContextKey = "user"
)

// RequireAuth creates a middleware that rejects requests without a valid
// bearer token.
func RequireAuth(authAdapter auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Authorization header is required",
			})
		}

		return validateBearer(c, authAdapter, authHeader)
	}
}

// OptionalAuth creates a middleware for endpoints that work with or
// without authentication. A missing header scopes the request to the
// anonymous owner; a present header must still validate.
func OptionalAuth(authAdapter auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}

		return validateBearer(c, authAdapter, authHeader)
	}
}

// validateBearer checks the bearer token and stores the claims in the
// request context.
func validateBearer(c *fiber.Ctx, authAdapter auth.AuthPort, authHeader string) error {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid authorization header format. Use: Bearer <token>",
		})
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Token is required",
		})
	}

	claims, err := authAdapter.ValidateToken(c.UserContext(), token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid or expired token",
		})
	}

	c.Locals(UserContextKey, claims)
	return c.Next()
}

// ownerFromContext returns the authenticated user's ID, or the empty
// string for anonymous requests.
func ownerFromContext(c *fiber.Ctx) string {
	if claims, ok := c.Locals(UserContextKey).(*domain.Claims); ok {
		return claims.UserID
	}
	return ""
}
