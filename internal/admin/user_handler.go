package admin

import (
	"net/url"
	"strings"

	"edp-shifts/internal/auth"
	"edp-shifts/internal/credential"
	"edp-shifts/internal/models"

	"github.com/gofiber/fiber/v2"
)

type RegisterUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // "user" or "admin"; defaults to "user"
}

type SetRoleRequest struct {
	Role string `json:"role"`
}

type SetVerifiedRequest struct {
	Verified *bool `json:"verified"` // optional, defaults to true
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

func usernameParam(c *fiber.Ctx) (string, error) {
	raw, err := url.PathUnescape(c.Params("username"))
	if err != nil || strings.TrimSpace(raw) == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "Invalid username")
	}
	return raw, nil
}

// ----------------------------------------
// USER LIST / REGISTRATION
// ----------------------------------------

// GET /api/admin/users
func ListUsersHandler(users *credential.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := users.List(c.UserContext(), auth.SessionFrom(c))
		if err != nil {
			return err
		}

		res := make([]auth.UserResponse, 0, len(list))
		for i := range list {
			res = append(res, auth.NewUserResponse(&list[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/admin/users
func RegisterUserHandler(users *credential.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		role := models.RoleUser
		if r := strings.TrimSpace(body.Role); r != "" {
			role = models.UserRole(strings.ToLower(r))
		}

		user, err := users.Register(c.UserContext(), auth.SessionFrom(c), credential.RegisterInput{
			Username: body.Username,
			Email:    body.Email,
			Password: body.Password,
			Role:     role,
		})
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(auth.NewUserResponse(user))
	}
}

// ----------------------------------------
// ACCOUNT CHANGES
// ----------------------------------------

// PUT /api/admin/users/:username/role
func SetRoleHandler(users *credential.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, err := usernameParam(c)
		if err != nil {
			return err
		}
		var body SetRoleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		role := models.UserRole(strings.ToLower(strings.TrimSpace(body.Role)))
		if err := users.SetRole(c.UserContext(), auth.SessionFrom(c), username, role); err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"message":  "Role updated",
			"username": username,
			"role":     role,
		})
	}
}

// PUT /api/admin/users/:username/verify
func SetVerifiedHandler(users *credential.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, err := usernameParam(c)
		if err != nil {
			return err
		}
		var body SetVerifiedRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
			}
		}
		verified := true
		if body.Verified != nil {
			verified = *body.Verified
		}

		if err := users.SetVerified(c.UserContext(), auth.SessionFrom(c), username, verified); err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"message":  "Verification updated",
			"username": username,
			"verified": verified,
		})
	}
}

// PUT /api/admin/users/:username/password
func ResetPasswordHandler(users *credential.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, err := usernameParam(c)
		if err != nil {
			return err
		}
		var body ResetPasswordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if err := users.ResetPassword(c.UserContext(), auth.SessionFrom(c), username, body.NewPassword); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "Password reset successfully"})
	}
}
