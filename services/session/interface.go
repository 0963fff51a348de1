package session

import (
	"context"
	"errors"

	"rapstation/models"
)

// ErrSessionNotFound is returned when no grid session exists for a code.
var ErrSessionNotFound = errors.New("booking session not found or expired")

// SessionStore keeps grid state between requests and guards checkout against
// duplicate submission of the same code.
type SessionStore interface {
	Get(ctx context.Context, code string) (*models.BookingSession, error)
	Save(ctx context.Context, s *models.BookingSession) error
	Delete(ctx context.Context, code string) error
	// Lock reports false when a checkout for code is already running.
	Lock(ctx context.Context, code string) (bool, error)
	Unlock(ctx context.Context, code string) error
}
