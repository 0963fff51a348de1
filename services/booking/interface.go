package booking

import (
	"context"
	"time"

	reservationRepo "rapstation/database/repository/reservation"
	"rapstation/models"
	"rapstation/services/obfuscation"
	"rapstation/services/session"
	"rapstation/services/tasks"
	"rapstation/utils"

	"go.uber.org/zap"
)

// BookingService drives one reservation from placeholder to paid checkout.
type BookingService interface {
	CreatePlaceholder(ctx context.Context, in PlaceholderInput) (*models.Reservation, error)
	Grid(ctx context.Context, code string) (*models.GridView, error)
	Click(ctx context.Context, code, label string, index int) (*models.GridView, error)
	Checkout(ctx context.Context, code, paymentMethod string) (*models.BookingResponse, error)
	Track(ctx context.Context, query string) ([]models.PublicReservation, error)
	// ExpirePlaceholder cancels a reservation that never got a time slot. It reports
	// whether anything changed.
	ExpirePlaceholder(ctx context.Context, code string) (bool, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo           reservationRepo.ReservationRepository
	Sessions       session.SessionStore
	Pricer         PriceCalculator
	Cipher         *obfuscation.Cipher
	Tasks          tasks.Scheduler
	Logger         *zap.Logger
	HourLabels     []string
	PlaceholderTTL time.Duration
	Location       *time.Location
	Now            func() time.Time
	NewCode        func() (string, error)
}

func (s *DefaultBookingService) labels() []string {
	if len(s.HourLabels) == 0 {
		return models.HourLabels
	}
	return s.HourLabels
}

func (s *DefaultBookingService) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *DefaultBookingService) pricer() PriceCalculator {
	if s.Pricer == nil {
		return FlatHourly{Rate: DefaultHourlyRate}
	}
	return s.Pricer
}

func (s *DefaultBookingService) scheduler() tasks.Scheduler {
	if s.Tasks == nil {
		return tasks.NoopScheduler{}
	}
	return s.Tasks
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

func (s *DefaultBookingService) newCode() (string, error) {
	if s.NewCode != nil {
		return s.NewCode()
	}
	return utils.GenerateBookingCode()
}
