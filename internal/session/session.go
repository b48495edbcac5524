// Package session carries the identity of the caller into every operation
// that needs authorization.
package session

import (
	"errors"

	"edp-shifts/internal/models"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("not permitted for this role")
)

type Session struct {
	Username string
	Role     models.UserRole
}

func New(username string, role models.UserRole) *Session {
	return &Session{Username: username, Role: role}
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == models.RoleAdmin
}

// Require fails unless s is present and holds one of roles. With no roles any
// authenticated session passes.
func Require(s *Session, roles ...models.UserRole) error {
	if s == nil || s.Username == "" {
		return ErrUnauthenticated
	}
	if len(roles) == 0 {
		return nil
	}
	for _, r := range roles {
		if s.Role == r {
			return nil
		}
	}
	return ErrForbidden
}
