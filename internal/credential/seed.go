package credential

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"edp-shifts/internal/models"
)

const AdminUsername = "admin"

// Seed inserts one `user` account per branch code and the `admin` account when
// they are absent. Existing accounts are left as they are. It returns how many
// accounts were created.
func Seed(ctx context.Context, s *Store, branches []string, adminPassword string) (int, error) {
	created := 0
	for _, branch := range branches {
		branch = strings.ToUpper(strings.TrimSpace(branch))
		if branch == "" {
			continue
		}
		lower := strings.ToLower(branch)
		ok, err := ensure(ctx, s, branch, lower+"@example.com", lower+"123", models.RoleUser)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}

	ok, err := ensure(ctx, s, AdminUsername, "admin@example.com", adminPassword, models.RoleAdmin)
	if err != nil {
		return created, err
	}
	if ok {
		created++
	}
	return created, nil
}

func ensure(ctx context.Context, s *Store, username, email, password string, role models.UserRole) (bool, error) {
	_, err := s.Register(ctx, username, email, password, role)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrDuplicateUsername):
		return false, nil
	default:
		return false, fmt.Errorf("seed %s: %w", username, err)
	}
}
