package credential

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"edp-shifts/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRole        = errors.New("role must be user or admin")
	ErrEmptyPassword      = errors.New("password must not be empty")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
)

// Store persists accounts in the users table. It performs no authorization;
// see Service for role checks.
type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewStore(db *gorm.DB, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{db: db, log: log}
}

// Register inserts an unverified account. An existing username is never
// overwritten.
func (s *Store) Register(ctx context.Context, username, email, password string, role models.UserRole) (*models.User, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	username = strings.TrimSpace(username)

	var exist models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).Take(&exist).Error
	if err == nil {
		return nil, ErrDuplicateUsername
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup user %q: %w", username, err)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		PasswordHash: hash,
		Email:        strings.TrimSpace(email),
		Role:         role,
		Verified:     false,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("create user %q: %w", username, err)
	}
	return &user, nil
}

// Authenticate returns the account only when password matches. Unknown users
// and wrong passwords both yield ErrInvalidCredentials.
func (s *Store) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		verifyPassword(dummyHash(), password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !verifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	if needsRehash(user.PasswordHash) {
		if err := s.ResetPassword(ctx, user.Username, password); err != nil {
			s.log.Warn("legacy password upgrade failed", zap.String("username", user.Username), zap.Error(err))
		} else {
			s.log.Info("legacy password hash upgraded", zap.String("username", user.Username))
		}
	}
	return &user, nil
}

func (s *Store) Get(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	return &user, nil
}

// List returns every account ordered by username.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("username asc").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *Store) ResetPassword(ctx context.Context, username, newPassword string) error {
	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.update(ctx, username, "password_hash", hash)
}

func (s *Store) SetRole(ctx context.Context, username string, role models.UserRole) error {
	if !role.Valid() {
		return ErrInvalidRole
	}
	return s.update(ctx, username, "role", role)
}

func (s *Store) SetVerified(ctx context.Context, username string, verified bool) error {
	return s.update(ctx, username, "verified", verified)
}

func (s *Store) update(ctx context.Context, username, column string, value any) error {
	res := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ?", username).
		Update(column, value)
	if res.Error != nil {
		return fmt.Errorf("update %s for %q: %w", column, username, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
