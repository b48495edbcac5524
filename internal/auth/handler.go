package auth

import (
	"edp-shifts/internal/config"
	"edp-shifts/internal/credential"
	"edp-shifts/internal/models"

	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

type UserResponse struct {
	ID        uint            `json:"id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	Verified  bool            `json:"verified"`
	CreatedAt string          `json:"created_at"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		Verified:  u.Verified,
		CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config, users *credential.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		user, err := users.Login(c.UserContext(), body.Username, body.Password)
		if err != nil {
			return err
		}

		token, err := GenerateToken(cfg.JWTSecret, cfg.JWTTTL, user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not issue token")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user":  NewUserResponse(user),
		})
	}
}

// GET /api/auth/me
func MeHandler(users *credential.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := users.Profile(c.UserContext(), SessionFrom(c))
		if err != nil {
			return err
		}
		return c.JSON(NewUserResponse(user))
	}
}

// PUT /api/auth/password
func ChangePasswordHandler(users *credential.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ChangePasswordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		sess := SessionFrom(c)
		if sess == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
		}
		if err := users.ResetPassword(c.UserContext(), sess, sess.Username, body.NewPassword); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "Password reset successfully"})
	}
}
