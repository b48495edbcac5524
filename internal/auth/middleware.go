package auth

import (
	"context"
	"errors"
	"strings"

	"edp-shifts/internal/config"
	"edp-shifts/internal/credential"
	"edp-shifts/internal/models"
	"edp-shifts/internal/session"

	"github.com/gofiber/fiber/v2"
)

const CtxSessionKey = "session"

// Accounts loads the stored account a token refers to.
type Accounts interface {
	Profile(ctx context.Context, sess *session.Session) (*models.User, error)
}

// JWTMiddleware verifies the bearer token and stores the caller's session.
// The role comes from the stored account, not from the token claims.
func JWTMiddleware(cfg *config.Config, users Accounts) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header missing")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization must be 'Bearer <token>'")
		}

		claimed, err := ParseToken(cfg.JWTSecret, strings.TrimSpace(parts[1]))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		user, err := users.Profile(c.UserContext(), claimed)
		if errors.Is(err, credential.ErrUserNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "Account no longer exists")
		}
		if err != nil {
			return err
		}

		c.Locals(CtxSessionKey, session.New(user.Username, user.Role))
		return c.Next()
	}
}

// SessionFrom returns the session set by JWTMiddleware, or nil.
func SessionFrom(c *fiber.Ctx) *session.Session {
	sess, _ := c.Locals(CtxSessionKey).(*session.Session)
	return sess
}

// RequireRole guards a route group ahead of the services' own checks.
func RequireRole(allowedRoles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := session.Require(SessionFrom(c), allowedRoles...); err != nil {
			return err
		}
		return c.Next()
	}
}
