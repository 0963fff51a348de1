// File: database/repository/reservation/interface.go
package reservationRepo

import (
	"context"
	"errors"

	"rapstation/models"
)

var (
	// ErrNotFound is returned when no reservation has the given code.
	ErrNotFound = errors.New("reservation not found")
	// ErrDuplicateCode is returned by Insert when the code is already taken.
	ErrDuplicateCode = errors.New("reservation code already exists")
)

// ReservationRepository is the reservation store used by the booking core and the admin panel.
type ReservationRepository interface {
	// List returns matching reservations, newest first.
	List(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error)
	GetByCode(ctx context.Context, code string) (*models.Reservation, error)
	Insert(ctx context.Context, r *models.Reservation) (*models.Reservation, error)
	// UpsertByCode writes only the set fields, inserting the reservation when it does not exist.
	UpsertByCode(ctx context.Context, code string, fields models.ReservationFields) (*models.Reservation, error)
	UpdateStatus(ctx context.Context, code string, status models.ReservationStatus) error
	// CancelPlaceholder cancels code only while it is still REQUESTED without an interval.
	// It reports whether a row changed.
	CancelPlaceholder(ctx context.Context, code string) (bool, error)
	Delete(ctx context.Context, code string) error
}

var (
	_ ReservationRepository = (*MongoReservationRepo)(nil)
	_ ReservationRepository = (*PostgresReservationRepo)(nil)
	_ ReservationRepository = (*MemoryReservationRepo)(nil)
)
