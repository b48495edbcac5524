package credential

import (
	"context"
	"testing"

	"edp-shifts/internal/models"
	"edp-shifts/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceAuthorization(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t), nil)
	svc := NewService(store)

	_, err := store.Register(ctx, "admin", "", "admin123", models.RoleAdmin)
	require.NoError(t, err)
	_, err = store.Register(ctx, "RFT", "", "rft123", models.RoleUser)
	require.NoError(t, err)
	_, err = store.Register(ctx, "DCN", "", "dcn123", models.RoleUser)
	require.NoError(t, err)

	admin := session.New("admin", models.RoleAdmin)
	rft := session.New("RFT", models.RoleUser)

	t.Run("register requires admin", func(t *testing.T) {
		in := RegisterInput{Username: "LAL", Password: "lal123", Role: models.RoleUser}
		_, err := svc.Register(ctx, rft, in)
		assert.ErrorIs(t, err, session.ErrForbidden)
		_, err = svc.Register(ctx, nil, in)
		assert.ErrorIs(t, err, session.ErrUnauthenticated)

		u, err := svc.Register(ctx, admin, in)
		require.NoError(t, err)
		assert.Equal(t, "LAL", u.Username)

		_, err = svc.Register(ctx, admin, in)
		assert.ErrorIs(t, err, ErrDuplicateUsername)
		_, err = svc.Register(ctx, admin, RegisterInput{Username: "  ", Password: "x", Role: models.RoleUser})
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("password reset is self or admin", func(t *testing.T) {
		require.NoError(t, svc.ResetPassword(ctx, rft, "RFT", "mine"))
		assert.ErrorIs(t, svc.ResetPassword(ctx, rft, "DCN", "theirs"), session.ErrForbidden)
		assert.ErrorIs(t, svc.ResetPassword(ctx, rft, "RFT", ""), ErrMissingFields)
		require.NoError(t, svc.ResetPassword(ctx, admin, "DCN", "reset"))

		_, err := svc.Login(ctx, "RFT", "mine")
		assert.NoError(t, err)
		_, err = svc.Login(ctx, "DCN", "reset")
		assert.NoError(t, err)
	})

	t.Run("role and verification are admin only", func(t *testing.T) {
		assert.ErrorIs(t, svc.SetRole(ctx, rft, "RFT", models.RoleAdmin), session.ErrForbidden)
		assert.ErrorIs(t, svc.SetVerified(ctx, rft, "RFT", true), session.ErrForbidden)
		_, err := svc.List(ctx, rft)
		assert.ErrorIs(t, err, session.ErrForbidden)

		require.NoError(t, svc.SetVerified(ctx, admin, "RFT", true))
		require.NoError(t, svc.SetRole(ctx, admin, "DCN", models.RoleAdmin))

		users, err := svc.List(ctx, admin)
		require.NoError(t, err)
		assert.Len(t, users, 4)
	})

	t.Run("profile and login", func(t *testing.T) {
		p, err := svc.Profile(ctx, rft)
		require.NoError(t, err)
		assert.Equal(t, "RFT", p.Username)

		_, err = svc.Profile(ctx, nil)
		assert.ErrorIs(t, err, session.ErrUnauthenticated)

		_, err = svc.Login(ctx, "", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
