package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	reservationRepo "rapstation/database/repository/reservation"
	"rapstation/models"
	"rapstation/services/booking"
	"rapstation/services/obfuscation"
	"rapstation/utils"
)

const revealKey = "staff-reveal-key"

func opaque(t *testing.T, plain string) string {
	t.Helper()
	o, err := obfuscation.Obfuscate(plain, revealKey)
	require.NoError(t, err)
	return o
}

func newService(t *testing.T) (*DefaultAdminService, *reservationRepo.MemoryReservationRepo) {
	t.Helper()
	repo := reservationRepo.NewMemoryReservationRepo(
		models.Reservation{Code: "BK-AAA", Resource: "PC Gaming", Date: "2025-01-10", Interval: "08:00 - 10:00", Status: models.StatusPaid,
			NameOpaque: opaque(t, "Budi Santoso"), PhoneOpaque: opaque(t, "6281234567890")},
		models.Reservation{Code: "BK-BBB", Resource: "PlayStation 5", Date: "2025-01-10", Interval: "10:00-13:00", Status: models.StatusInProgress,
			NameOpaque: opaque(t, "Sari Dewi"), PhoneOpaque: opaque(t, "6289876543210")},
		models.Reservation{Code: "BK-CCC", Resource: "PlayStation 4", Date: "2025-01-11", Interval: "garbled", Status: models.StatusCompleted,
			NameOpaque: "not-a-ciphertext", PhoneOpaque: "also-not"},
		models.Reservation{Code: "BK-DDD", Resource: "PC Gaming", Date: "2025-01-11", Interval: models.IntervalUnselected, Status: models.StatusRequested},
		models.Reservation{Code: "BK-EEE", Resource: "PC Gaming", Date: "2025-01-12", Interval: "12:00 - 14:00", Status: models.StatusCancelled},
	)
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	return &DefaultAdminService{
		Repo:         repo,
		Pricer:       booking.FlatHourly{Rate: booking.DefaultHourlyRate},
		Username:     "admin",
		PasswordHash: string(hash),
		JWTSecret:    []byte("jwt-test-secret"),
	}, repo
}

func TestLogin(t *testing.T) {
	svc, _ := newService(t)

	token, err := svc.Login("admin", "s3cret")
	require.NoError(t, err)
	sub, role, err := utils.ValidateToken(svc.JWTSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "admin", sub)
	assert.Equal(t, AdminRole, role)

	_, err = svc.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login("root", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	svc.PasswordHash = ""
	_, err = svc.Login("admin", "s3cret")
	assert.ErrorIs(t, err, ErrLoginDisabled)
}

func TestStats(t *testing.T) {
	svc, _ := newService(t)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 3, stats.Paid)
	assert.Equal(t, 1, stats.Active)
	// 2h + 3h + one hour for the unparseable interval
	assert.Equal(t, int64(30000+45000+15000), stats.Revenue)
}

func TestList_RevealFallback(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	rows, err := svc.List(ctx, "", revealKey)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	byCode := map[string]models.AdminReservation{}
	for _, r := range rows {
		byCode[r.Code] = r
	}
	assert.Equal(t, "Budi Santoso", byCode["BK-AAA"].Name)
	assert.True(t, byCode["BK-AAA"].Revealed)
	assert.Equal(t, "not-a-ciphertext", byCode["BK-CCC"].Name)
	assert.False(t, byCode["BK-CCC"].Revealed)

	rows, err = svc.List(ctx, "", "wrong-key")
	require.NoError(t, err)
	for _, r := range rows {
		assert.Equal(t, r.NameOpaque, r.Name)
		assert.False(t, r.Revealed)
	}
}

func TestList_Search(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	rows, err := svc.List(ctx, "sari", revealKey)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "BK-BBB", rows[0].Code)

	// without the key names are opaque, so only codes match
	rows, err = svc.List(ctx, "sari", "")
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = svc.List(ctx, "bk-ccc", "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestUpdateStatusAndDelete(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	res, err := svc.UpdateStatus(ctx, "BK-AAA", "cancelled")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, res.Status)

	occupying, err := repo.List(ctx, models.OccupyingFilter("2025-01-10", "PC Gaming"))
	require.NoError(t, err)
	assert.Empty(t, occupying, "a cancelled reservation frees its slot")

	_, err = svc.UpdateStatus(ctx, "BK-AAA", "ARCHIVED")
	assert.ErrorIs(t, err, ErrUnknownStatus)
	_, err = svc.UpdateStatus(ctx, "BK-ZZZ", "PAID")
	assert.ErrorIs(t, err, booking.ErrReservationNotFound)

	require.NoError(t, svc.Delete(ctx, "BK-AAA"))
	assert.ErrorIs(t, svc.Delete(ctx, "BK-AAA"), booking.ErrReservationNotFound)
}
