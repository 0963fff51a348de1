package booking

import (
	"context"
	"fmt"
	"strings"

	"rapstation/models"
)

// Track lists reservations newest first, filtered by code or resource. Names stay opaque.
func (s *DefaultBookingService) Track(ctx context.Context, query string) ([]models.PublicReservation, error) {
	all, err := s.Repo.List(ctx, models.ReservationFilter{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.PublicReservation, 0, len(all))
	for _, r := range all {
		if q != "" &&
			!strings.Contains(strings.ToLower(r.Code), q) &&
			!strings.Contains(strings.ToLower(r.Resource), q) {
			continue
		}
		out = append(out, r.Public())
	}
	return out, nil
}
