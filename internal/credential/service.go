package credential

import (
	"context"
	"errors"
	"strings"

	"edp-shifts/internal/models"
	"edp-shifts/internal/session"
)

var ErrMissingFields = errors.New("username and password are required")

// Service applies role checks in front of Store.
type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) Login(ctx context.Context, username, password string) (*models.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	return s.store.Authenticate(ctx, username, password)
}

func (s *Service) Profile(ctx context.Context, sess *session.Session) (*models.User, error) {
	if err := session.Require(sess); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, sess.Username)
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     models.UserRole
}

func (s *Service) Register(ctx context.Context, sess *session.Session, in RegisterInput) (*models.User, error) {
	if err := session.Require(sess, models.RoleAdmin); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Username) == "" || in.Password == "" {
		return nil, ErrMissingFields
	}
	return s.store.Register(ctx, in.Username, in.Email, in.Password, in.Role)
}

func (s *Service) List(ctx context.Context, sess *session.Session) ([]models.User, error) {
	if err := session.Require(sess, models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.store.List(ctx)
}

// ResetPassword lets a user change their own password and an admin change anyone's.
func (s *Service) ResetPassword(ctx context.Context, sess *session.Session, username, newPassword string) error {
	if err := session.Require(sess); err != nil {
		return err
	}
	if sess.Username != username && !sess.IsAdmin() {
		return session.ErrForbidden
	}
	if newPassword == "" {
		return ErrMissingFields
	}
	return s.store.ResetPassword(ctx, username, newPassword)
}

func (s *Service) SetRole(ctx context.Context, sess *session.Session, username string, role models.UserRole) error {
	if err := session.Require(sess, models.RoleAdmin); err != nil {
		return err
	}
	return s.store.SetRole(ctx, username, role)
}

func (s *Service) SetVerified(ctx context.Context, sess *session.Session, username string, verified bool) error {
	if err := session.Require(sess, models.RoleAdmin); err != nil {
		return err
	}
	return s.store.SetVerified(ctx, username, verified)
}
