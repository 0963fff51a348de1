package admin

import (
	"context"
	"errors"
	"time"

	reservationRepo "rapstation/database/repository/reservation"
	"rapstation/models"
	"rapstation/services/booking"

	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnknownStatus      = errors.New("unknown reservation status")
	ErrLoginDisabled      = errors.New("admin login is not configured")
)

// AdminService backs the venue staff panel.
type AdminService interface {
	Login(username, password string) (string, error)
	List(ctx context.Context, search, revealKey string) ([]models.AdminReservation, error)
	UpdateStatus(ctx context.Context, code, status string) (*models.Reservation, error)
	Delete(ctx context.Context, code string) error
	Stats(ctx context.Context) (*models.AdminStats, error)
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Repo         reservationRepo.ReservationRepository
	Pricer       booking.PriceCalculator
	Logger       *zap.Logger
	Username     string
	PasswordHash string
	JWTSecret    []byte
	TokenTTL     time.Duration
	HourLabels   []string
}

// AdminRole is the role claim carried by admin tokens.
const AdminRole = "admin"

const defaultTokenTTL = 12 * time.Hour

func (a *DefaultAdminService) log() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

func (a *DefaultAdminService) labels() []string {
	if len(a.HourLabels) == 0 {
		return models.HourLabels
	}
	return a.HourLabels
}

func (a *DefaultAdminService) pricer() booking.PriceCalculator {
	if a.Pricer == nil {
		return booking.FlatHourly{Rate: booking.DefaultHourlyRate}
	}
	return a.Pricer
}
