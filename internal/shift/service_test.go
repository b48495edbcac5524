package shift

import (
	"bytes"
	"context"
	"testing"

	"edp-shifts/internal/models"
	"edp-shifts/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestSubmitReviewDeleteFlow(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	svc := NewService(store)

	rft := session.New("RFT", models.RoleUser)
	admin := session.New("admin", models.RoleAdmin)

	submitted, err := svc.Submit(ctx, rft, Fields{
		Date:        mustDate(t, "2024-01-01"),
		Branch:      "ignored",
		StaffName:   "A",
		StaffNumber: "1",
		MobilePhone: "555",
		ShiftTiming: models.Timing6to2,
	})
	require.NoError(t, err)
	assert.Equal(t, "RFT", submitted.Branch)

	shifts, err := svc.ListAll(ctx, admin)
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Equal(t, submitted.ID, shifts[0].ID)
	assert.Equal(t, "2024-01-01", shifts[0].Date.Format(DateLayout))
	assert.False(t, shifts[0].Timestamp.IsZero())

	require.NoError(t, svc.Delete(ctx, admin, submitted.ID))

	shifts, err = svc.ListAll(ctx, admin)
	require.NoError(t, err)
	assert.Empty(t, shifts)

	assert.ErrorIs(t, svc.Delete(ctx, admin, submitted.ID), ErrNotFound)
}

func TestServiceRoleChecks(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	svc := NewService(store)

	rft := session.New("RFT", models.RoleUser)
	admin := session.New("admin", models.RoleAdmin)

	_, err := svc.Submit(ctx, admin, sample(t, "2024-01-01", "", "A"))
	assert.ErrorIs(t, err, session.ErrForbidden)
	_, err = svc.Submit(ctx, nil, sample(t, "2024-01-01", "", "A"))
	assert.ErrorIs(t, err, session.ErrUnauthenticated)

	sh, err := svc.Submit(ctx, rft, sample(t, "2024-01-01", "", "A"))
	require.NoError(t, err)

	_, err = svc.ListAll(ctx, rft)
	assert.ErrorIs(t, err, session.ErrForbidden)
	_, err = svc.Update(ctx, rft, sh.ID, sample(t, "2024-01-01", "RFT", "B"))
	assert.ErrorIs(t, err, session.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, rft, sh.ID), session.ErrForbidden)
	assert.ErrorIs(t, svc.Export(ctx, rft, &bytes.Buffer{}), session.ErrForbidden)

	sugg, err := svc.Suggest(ctx, rft, "")
	require.NoError(t, err)
	assert.Len(t, sugg, 1)
	_, err = svc.Suggest(ctx, nil, "")
	assert.ErrorIs(t, err, session.ErrUnauthenticated)
}

func TestServiceValidation(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	svc := NewService(store)
	rft := session.New("RFT", models.RoleUser)
	admin := session.New("admin", models.RoleAdmin)

	missing := sample(t, "2024-01-01", "", "  ")
	_, err := svc.Submit(ctx, rft, missing)
	assert.ErrorIs(t, err, ErrInvalidFields)
	assert.Contains(t, err.Error(), "staff_name")

	badTiming := sample(t, "2024-01-01", "", "A")
	badTiming.ShiftTiming = "7-3"
	_, err = svc.Submit(ctx, rft, badTiming)
	assert.ErrorIs(t, err, ErrInvalidFields)

	_, err = svc.Submit(ctx, rft, Fields{StaffName: "A", StaffNumber: "1", MobilePhone: "5", ShiftTiming: models.Timing6to2})
	assert.ErrorIs(t, err, ErrInvalidFields)

	sh, err := svc.Submit(ctx, rft, sample(t, "2024-01-01", "", "A"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, admin, sh.ID, sample(t, "2024-01-01", "", "A"))
	assert.ErrorIs(t, err, ErrInvalidFields, "admin edits must name a branch")

	updated, err := svc.Update(ctx, admin, sh.ID, sample(t, "2024-01-03", " DCN ", "B"))
	require.NoError(t, err)
	assert.Equal(t, "DCN", updated.Branch)
	assert.Equal(t, "B", updated.StaffName)

	_, err = svc.Update(ctx, admin, 777, sample(t, "2024-01-03", "DCN", "B"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = ParseDate("01-01-2024")
	assert.ErrorIs(t, err, ErrInvalidFields)
}

func TestExportXLSX(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	svc := NewService(store)
	rft := session.New("RFT", models.RoleUser)
	admin := session.New("admin", models.RoleAdmin)

	_, err := svc.Submit(ctx, rft, sample(t, "2024-01-02", "", "B"))
	require.NoError(t, err)
	_, err = svc.Submit(ctx, rft, sample(t, "2024-01-01", "", "A"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(ctx, admin, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Shifts")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Date", "Branch", "Staff Name", "Staff Number", "Mobile Phone", "Shift Timing", "Timestamp"}, rows[0])
	assert.Equal(t, "01-01-2024", rows[1][1])
	assert.Equal(t, "A", rows[1][3])
	assert.Equal(t, "6-2", rows[1][6])
	assert.Equal(t, "2024-01-01 09:30:15", rows[1][7])
	assert.Equal(t, "02-01-2024", rows[2][1])
}
