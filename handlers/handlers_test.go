package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	reservationRepo "rapstation/database/repository/reservation"
	"rapstation/handlers"
	"rapstation/models"
	"rapstation/routes"
	"rapstation/services/admin"
	"rapstation/services/booking"
	"rapstation/services/obfuscation"
	"rapstation/services/session"
	"rapstation/utils"
)

func newRouter(t *testing.T, seed ...models.Reservation) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := reservationRepo.NewMemoryReservationRepo(seed...)
	pricer := booking.FlatHourly{Rate: booking.DefaultHourlyRate}
	bookingSvc := &booking.DefaultBookingService{
		Repo:     repo,
		Sessions: session.NewMemorySessionStore(time.Hour),
		Pricer:   pricer,
		Cipher:   obfuscation.NewCipher("handler-test-key"),
		Location: time.UTC,
		Now:      func() time.Time { return time.Date(2025, 1, 9, 8, 0, 0, 0, time.UTC) },
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("pa55word"), bcrypt.MinCost)
	require.NoError(t, err)
	adminSvc := &admin.DefaultAdminService{
		Repo:         repo,
		Pricer:       pricer,
		Username:     "staff",
		PasswordHash: string(hash),
		JWTSecret:    []byte("handler-test-secret"),
	}

	hb := handlers.NewHandlerBundle(handlers.NewBookingHandler(bookingSvc), handlers.NewAdminHandler(adminSvc))
	hb.JWTSecret = adminSvc.JWTSecret
	hb.Health = utils.NewHealthMonitor(nil)

	r := gin.New()
	r.Use(utils.ErrorHandler())
	routes.RegisterRoutes(r, hb)
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestBookingEndpoints(t *testing.T) {
	r := newRouter(t, models.Reservation{
		Code: "BK-PRE", Resource: "PC Gaming", Date: "2025-01-10", Interval: "08:00 - 10:00", Status: models.StatusPaid,
	})

	w := do(t, r, http.MethodPost, "/api/bookings", booking.PlaceholderInput{
		Type: "warnet", Date: "2025-01-10", Name: "Budi", Phone: "081234567890",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	placeholder := decode[models.PlaceholderResponse](t, w)
	assert.Equal(t, "REQUESTED", placeholder.Status)
	code := placeholder.Code

	w = do(t, r, http.MethodGet, "/api/bookings/"+code+"/grid", nil)
	require.Equal(t, http.StatusOK, w.Code)
	grid := decode[models.GridView](t, w)
	assert.Equal(t, models.SlotBooked, grid.Slots[9].Status)

	w = do(t, r, http.MethodPost, "/api/bookings/"+code+"/grid/click", gin.H{"label": "10:00", "index": 10})
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodPost, "/api/bookings/"+code+"/grid/click", gin.H{"label": "12:00", "index": 12})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(30000), decode[models.GridView](t, w).Price)

	w = do(t, r, http.MethodPost, "/api/bookings/"+code+"/checkout", gin.H{"paymentMethod": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "payment_required", decode[utils.ErrorResponse](t, w).Error)

	w = do(t, r, http.MethodPost, "/api/bookings/"+code+"/checkout", gin.H{"paymentMethod": "qris"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	paid := decode[models.BookingResponse](t, w)
	assert.Equal(t, int64(30000), paid.Price)
	assert.Equal(t, "10:00 - 12:00", paid.Reservation.Interval)

	w = do(t, r, http.MethodPost, "/api/bookings/"+code+"/checkout", gin.H{"paymentMethod": "qris"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodGet, "/api/bookings/track?q="+code, nil)
	require.Equal(t, http.StatusOK, w.Code)
	tracked := decode[struct {
		Reservations []models.PublicReservation `json:"reservations"`
	}](t, w)
	require.Len(t, tracked.Reservations, 1)
	assert.Equal(t, models.StatusPaid, tracked.Reservations[0].Status)
	assert.NotEqual(t, "Budi", tracked.Reservations[0].Name)
}

func TestBookingEndpoints_Errors(t *testing.T) {
	r := newRouter(t, models.Reservation{
		Code: "BK-PRE", Resource: "PC Gaming", Date: "2025-01-10", Interval: "10:00 - 12:00", Status: models.StatusPaid,
	}, models.Reservation{
		Code: "BK-NEW", Resource: "PC Gaming", Date: "2025-01-10", Interval: models.IntervalUnselected, Status: models.StatusRequested,
	})

	w := do(t, r, http.MethodPost, "/api/bookings", booking.PlaceholderInput{Type: "warnet", Date: "2025-01-10"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[utils.ErrorResponse](t, w)
	assert.Contains(t, body.Fields, "name")
	assert.Contains(t, body.Fields, "phone")

	w = do(t, r, http.MethodGet, "/api/bookings/BK-404/grid", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPost, "/api/bookings/BK-NEW/grid/click", gin.H{"label": "09:00", "index": 9})
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodPost, "/api/bookings/BK-NEW/grid/click", gin.H{"label": "13:00", "index": 13})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "selection_conflict", decode[utils.ErrorResponse](t, w).Error)

	w = do(t, r, http.MethodPost, "/api/bookings/BK-NEW/grid/click", gin.H{"label": "09:00"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminEndpoints(t *testing.T) {
	r := newRouter(t,
		models.Reservation{Code: "BK-AAA", Resource: "PC Gaming", Date: "2025-01-10", Interval: "08:00 - 10:00", Status: models.StatusPaid},
		models.Reservation{Code: "BK-BBB", Resource: "PC Gaming", Date: "2025-01-10", Interval: models.IntervalUnselected, Status: models.StatusRequested},
	)

	w := do(t, r, http.MethodGet, "/api/admin/stats", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, http.MethodPost, "/api/admin/login", gin.H{"username": "staff", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, http.MethodPost, "/api/admin/login", gin.H{"username": "staff", "password": "pa55word"})
	require.Equal(t, http.StatusOK, w.Code)
	token := decode[map[string]string](t, w)["token"]
	auth := []string{"Authorization", "Bearer " + token}

	w = do(t, r, http.MethodGet, "/api/admin/stats", nil, auth...)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[models.AdminStats](t, w)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, int64(30000), stats.Revenue)

	w = do(t, r, http.MethodGet, "/api/admin/reservations?q=bbb", nil, append(auth, handlers.RevealKeyHeader, "any")...)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Reservations []models.AdminReservation `json:"reservations"`
	}](t, w)
	require.Len(t, list.Reservations, 1)

	w = do(t, r, http.MethodPatch, "/api/admin/reservations/BK-BBB/status", gin.H{"status": "bogus"}, auth...)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, r, http.MethodPatch, "/api/admin/reservations/BK-BBB/status", gin.H{"status": "CANCELLED"}, auth...)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusCancelled, decode[models.Reservation](t, w).Status)

	w = do(t, r, http.MethodDelete, "/api/admin/reservations/BK-BBB", nil, auth...)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, r, http.MethodDelete, "/api/admin/reservations/BK-BBB", nil, auth...)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	r := newRouter(t)
	w := do(t, r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
