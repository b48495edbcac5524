package credential

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"edp-shifts/internal/database"
	"edp-shifts/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	return db
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t), nil)

	first, err := store.Register(ctx, "RFT", "rft@example.com", "rft123", models.RoleUser)
	require.NoError(t, err)
	assert.False(t, first.Verified)
	assert.NotEqual(t, "rft123", first.PasswordHash)

	_, err = store.Register(ctx, "RFT", "other@example.com", "different", models.RoleAdmin)
	require.ErrorIs(t, err, ErrDuplicateUsername)

	got, err := store.Get(ctx, "RFT")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "rft@example.com", got.Email)
	assert.Equal(t, models.RoleUser, got.Role)
	assert.Equal(t, first.PasswordHash, got.PasswordHash)

	_, err = store.Authenticate(ctx, "RFT", "different")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	store := NewStore(setupTestDB(t), nil)
	_, err := store.Register(context.Background(), "x", "", "pw", models.UserRole("root"))
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t), nil)
	_, err := store.Register(ctx, "admin", "admin@example.com", "admin123", models.RoleAdmin)
	require.NoError(t, err)

	user, err := store.Authenticate(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
	assert.Equal(t, models.RoleAdmin, user.Role)

	_, err = store.Authenticate(ctx, "admin", "admin124")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = store.Authenticate(ctx, "nobody", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateUpgradesLegacyHash(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	store := NewStore(db, nil)

	legacy := models.User{
		Username:     "DCN",
		PasswordHash: legacyHash("dcn123"),
		Email:        "dcn@example.com",
		Role:         models.RoleUser,
	}
	require.NoError(t, db.Create(&legacy).Error)

	_, err := store.Authenticate(ctx, "DCN", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = store.Authenticate(ctx, "DCN", "dcn123")
	require.NoError(t, err)

	got, err := store.Get(ctx, "DCN")
	require.NoError(t, err)
	assert.False(t, needsRehash(got.PasswordHash))
	assert.True(t, verifyPassword(got.PasswordHash, "dcn123"))

	_, err = store.Authenticate(ctx, "DCN", "dcn123")
	assert.NoError(t, err)
}

func TestUpdates(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t), nil)
	_, err := store.Register(ctx, "TVK", "tvk@example.com", "tvk123", models.RoleUser)
	require.NoError(t, err)

	require.NoError(t, store.ResetPassword(ctx, "TVK", "n3w"))
	_, err = store.Authenticate(ctx, "TVK", "tvk123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = store.Authenticate(ctx, "TVK", "n3w")
	assert.NoError(t, err)

	require.NoError(t, store.SetRole(ctx, "TVK", models.RoleAdmin))
	require.NoError(t, store.SetVerified(ctx, "TVK", true))
	got, err := store.Get(ctx, "TVK")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, got.Role)
	assert.True(t, got.Verified)

	require.NoError(t, store.SetVerified(ctx, "TVK", false))
	got, err = store.Get(ctx, "TVK")
	require.NoError(t, err)
	assert.False(t, got.Verified)

	assert.ErrorIs(t, store.SetRole(ctx, "TVK", "owner"), ErrInvalidRole)
	assert.ErrorIs(t, store.ResetPassword(ctx, "ghost", "pw"), ErrUserNotFound)
	assert.ErrorIs(t, store.SetRole(ctx, "ghost", models.RoleUser), ErrUserNotFound)
	assert.ErrorIs(t, store.SetVerified(ctx, "ghost", true), ErrUserNotFound)
	_, err = store.Get(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPasswordLimits(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t), nil)
	long := strings.Repeat("p", 80)

	_, err := store.Register(ctx, "ALR", "alr@example.com", long, models.RoleUser)
	assert.ErrorIs(t, err, ErrPasswordTooLong)
	_, err = store.Register(ctx, "ALR", "alr@example.com", "", models.RoleUser)
	assert.ErrorIs(t, err, ErrEmptyPassword)
	_, err = store.Get(ctx, "ALR")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = store.Register(ctx, "ALR", "alr@example.com", "alr123", models.RoleUser)
	require.NoError(t, err)
	assert.ErrorIs(t, store.ResetPassword(ctx, "ALR", long), ErrPasswordTooLong)
	assert.ErrorIs(t, store.ResetPassword(ctx, "ALR", ""), ErrEmptyPassword)

	_, err = store.Authenticate(ctx, "ALR", "alr123")
	assert.NoError(t, err)
}

func TestDummyHashIsStable(t *testing.T) {
	first := dummyHash()
	require.NotEmpty(t, first)
	assert.Equal(t, first, dummyHash())
	assert.False(t, verifyPassword(first, "anything"))
}

func TestListOrderedByUsername(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t), nil)
	for _, u := range []string{"TVK", "ALR", "admin"} {
		_, err := store.Register(ctx, u, "", "pw", models.RoleUser)
		require.NoError(t, err)
	}

	users, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "ALR", users[0].Username)
	assert.Equal(t, "TVK", users[1].Username)
	assert.Equal(t, "admin", users[2].Username)
}

func TestSeedIsInsertIfAbsent(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t), nil)

	n, err := Seed(ctx, store, []string{"rft", "DCN", " "}, "admin123")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = store.Authenticate(ctx, "RFT", "rft123")
	require.NoError(t, err)
	require.NoError(t, store.ResetPassword(ctx, "admin", "changed"))

	n, err = Seed(ctx, store, []string{"RFT", "DCN"}, "admin123")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	admin, err := store.Authenticate(ctx, "admin", "changed")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Equal(t, "admin@example.com", admin.Email)
}
