package booking

import (
	"context"
	"errors"
	"fmt"

	reservationRepo "rapstation/database/repository/reservation"
	"rapstation/models"
	"rapstation/services/session"

	"go.uber.org/zap"
)

// loadReservation maps store failures onto booking errors.
func (s *DefaultBookingService) loadReservation(ctx context.Context, code string) (*models.Reservation, error) {
	res, err := s.Repo.GetByCode(ctx, code)
	if errors.Is(err, reservationRepo.ErrNotFound) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return res, nil
}

// fetchBlocked lists occupying reservations for (date, resource) and derives the blocked hours.
func (s *DefaultBookingService) fetchBlocked(ctx context.Context, date, resource string) (BlockedSet, []models.Reservation, error) {
	existing, err := s.Repo.List(ctx, models.OccupyingFilter(date, resource))
	if err != nil {
		s.log().Warn("fetchBlocked: failed to list reservations",
			zap.String("date", date), zap.String("resource", resource), zap.Error(err))
		return nil, nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return DeriveBlockedHours(existing, s.labels(), s.log()), existing, nil
}

// Grid re-derives the blocked hours and returns the slot picker for code.
func (s *DefaultBookingService) Grid(ctx context.Context, code string) (*models.GridView, error) {
	res, err := s.loadReservation(ctx, code)
	if err != nil {
		return nil, err
	}
	if res.HasInterval() {
		return nil, ErrAlreadyCommitted
	}

	blocked, _, err := s.fetchBlocked(ctx, res.Date, res.Resource)
	if err != nil {
		return nil, err
	}

	sess, err := s.Sessions.Get(ctx, code)
	if errors.Is(err, session.ErrSessionNotFound) {
		sess = &models.BookingSession{Code: code, Phase: models.PhaseIdle}
	} else if err != nil {
		return nil, fmt.Errorf("load grid session: %w", err)
	}
	if _, err := s.settleStalePhase(ctx, sess); err != nil {
		return nil, err
	}
	sess.Date = res.Date
	sess.Resource = res.Resource
	sess.Blocked = blocked.Labels(s.labels())

	// a selection that now crosses a taken hour cannot be committed any more
	if c, ok := CandidateFromSelection(sess.Selection); ok && sess.Phase == models.PhaseIdle {
		if CheckBlocked(c, blocked, s.labels()) != nil {
			s.log().Debug("Grid: clearing selection overtaken by another booking", zap.String("code", code))
			sess.Selection = models.SelectionRange{}
		}
	}

	sess.UpdatedAt = s.now()
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save grid session: %w", err)
	}
	return s.view(sess, blocked), nil
}

// Click applies one slot click to the stored selection.
func (s *DefaultBookingService) Click(ctx context.Context, code, label string, index int) (*models.GridView, error) {
	labels := s.labels()
	if index < 0 || index >= len(labels) || labels[index] != label {
		return nil, &ValidationError{Fields: map[string]string{"slot": "unknown slot " + label}}
	}

	sess, err := s.Sessions.Get(ctx, code)
	if errors.Is(err, session.ErrSessionNotFound) {
		// expired between requests; rebuild from the store
		if _, err := s.Grid(ctx, code); err != nil {
			return nil, err
		}
		sess, err = s.Sessions.Get(ctx, code)
	}
	if err != nil {
		return nil, fmt.Errorf("load grid session: %w", err)
	}
	if sess.Phase != models.PhaseIdle {
		settled, err := s.settleStalePhase(ctx, sess)
		if err != nil {
			return nil, err
		}
		if !settled {
			return nil, ErrCheckoutInProgress
		}
	}

	blocked := NewBlockedSet(sess.Blocked...)
	next, err := HandleSlotClick(label, index, sess.Selection, blocked, labels)
	if err != nil {
		return nil, err
	}
	sess.Selection = next
	sess.UpdatedAt = s.now()
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save grid session: %w", err)
	}
	return s.view(sess, blocked), nil
}

// settleStalePhase returns a session left in processing to idle when no checkout
// holds the lock for it. It reports whether the session is idle afterwards.
func (s *DefaultBookingService) settleStalePhase(ctx context.Context, sess *models.BookingSession) (bool, error) {
	if sess.Phase == models.PhaseIdle {
		return true, nil
	}
	locked, err := s.Sessions.Lock(ctx, sess.Code)
	if err != nil {
		return false, fmt.Errorf("check checkout lock: %w", err)
	}
	if !locked {
		return false, nil
	}
	if err := s.Sessions.Unlock(context.WithoutCancel(ctx), sess.Code); err != nil {
		s.log().Warn("settleStalePhase: failed to release lock", zap.String("code", sess.Code), zap.Error(err))
	}
	s.log().Info("settleStalePhase: clearing abandoned checkout", zap.String("code", sess.Code))
	sess.Phase = models.PhaseIdle
	return true, nil
}

func (s *DefaultBookingService) view(sess *models.BookingSession, blocked BlockedSet) *models.GridView {
	start, end := sess.Selection.Indices()
	return &models.GridView{
		Code:       sess.Code,
		Date:       sess.Date,
		Resource:   sess.Resource,
		Slots:      BuildGridSlots(s.labels(), sess.Selection, blocked),
		Selection:  sess.Selection,
		State:      sess.Selection.State(),
		Price:      s.pricer().Price(start, end),
		HourlyRate: s.pricer().HourlyRate(),
		Phase:      sess.Phase,
	}
}
