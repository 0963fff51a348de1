package admin

import (
	"context"
	"fmt"

	"rapstation/models"
	"rapstation/services/booking"
)

// Stats computes the dashboard counters. Revenue prices each paid reservation from its
// stored interval, or one hour when the interval cannot be parsed.
func (a *DefaultAdminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	all, err := a.Repo.List(ctx, models.ReservationFilter{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", booking.ErrFetchFailed, err)
	}

	stats := &models.AdminStats{Total: len(all)}
	for _, r := range all {
		if r.Status == models.StatusInProgress {
			stats.Active++
		}
		if !r.Status.IsPaid() {
			continue
		}
		stats.Paid++
		stats.Revenue += a.revenueOf(r)
	}
	return stats, nil
}

func (a *DefaultAdminService) revenueOf(r models.Reservation) int64 {
	p := a.pricer()
	parsed, err := booking.ParseInterval(r.Interval, a.labels())
	if err != nil || parsed.Empty() {
		return p.HourlyRate()
	}
	return p.Price(&parsed.StartIndex, &parsed.EndIndex)
}
