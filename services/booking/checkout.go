package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rapstation/models"
	"rapstation/services/session"

	"go.uber.org/zap"
)

// Checkout commits the selected range as PAID after a two-phase conflict check.
// On any failure the selection is preserved and the grid returns to idle.
func (s *DefaultBookingService) Checkout(ctx context.Context, code, paymentMethod string) (*models.BookingResponse, error) {
	logger := s.log().With(zap.String("code", code))

	method := strings.ToLower(strings.TrimSpace(paymentMethod))
	if method == "" {
		return nil, ErrPaymentRequired
	}
	if !ValidPaymentMethod(method) {
		return nil, &ValidationError{Fields: map[string]string{"paymentMethod": "unsupported payment method"}}
	}

	res, err := s.loadReservation(ctx, code)
	if err != nil {
		return nil, err
	}
	if res.HasInterval() {
		return nil, ErrAlreadyCommitted
	}

	sess, err := s.Sessions.Get(ctx, code)
	if errors.Is(err, session.ErrSessionNotFound) {
		return nil, ErrNoSelection
	}
	if err != nil {
		return nil, fmt.Errorf("load grid session: %w", err)
	}
	candidate, ok := CandidateFromSelection(sess.Selection)
	if !ok {
		return nil, ErrNoSelection
	}

	locked, err := s.Sessions.Lock(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("acquire checkout lock: %w", err)
	}
	if !locked {
		return nil, ErrCheckoutInProgress
	}
	defer func() {
		if err := s.Sessions.Unlock(context.WithoutCancel(ctx), code); err != nil {
			logger.Warn("Checkout: failed to release lock", zap.Error(err))
		}
	}()

	s.setPhase(ctx, sess, models.PhaseProcessing)
	labels := s.labels()

	// Phase 1: the hours the grid was rendered with.
	if err := CheckBlocked(candidate, NewBlockedSet(sess.Blocked...), labels); err != nil {
		logger.Info("Checkout: selection overlaps rendered blocked hours")
		s.setPhase(ctx, sess, models.PhaseIdle)
		return nil, err
	}

	// Phase 2: whatever the store holds right now.
	_, fresh, err := s.fetchBlocked(ctx, res.Date, res.Resource)
	if err != nil {
		s.setPhase(ctx, sess, models.PhaseIdle)
		return nil, err
	}
	if err := ValidateCandidate(candidate, fresh, labels); err != nil {
		logger.Info("Checkout: slot taken since grid render", zap.Error(err))
		s.setPhase(ctx, sess, models.PhaseIdle)
		return nil, err
	}

	interval := candidate.Interval(labels)
	status := models.StatusPaid
	saved, err := s.Repo.UpsertByCode(ctx, code, models.ReservationFields{
		Interval:      &interval,
		Status:        &status,
		PaymentMethod: &method,
	})
	if err != nil {
		logger.Error("Checkout: failed to persist reservation", zap.Error(err))
		s.setPhase(ctx, sess, models.PhaseIdle)
		return nil, fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}

	if err := s.Sessions.Delete(ctx, code); err != nil {
		logger.Warn("Checkout: failed to drop grid session", zap.Error(err))
	}
	if err := s.scheduler().CancelPlaceholderExpiry(ctx, code); err != nil {
		logger.Warn("Checkout: failed to cancel placeholder expiry", zap.Error(err))
	}

	start, end := candidate.Bounds()
	price := s.pricer().Price(&start, &end)
	logger.Info("Checkout: reservation paid",
		zap.String("interval", interval), zap.String("paymentMethod", method), zap.Int64("price", price))

	return &models.BookingResponse{
		Reservation: saved,
		Price:       price,
		Message:     fmt.Sprintf("%s booked for %s on %s", saved.Resource, interval, saved.Date),
	}, nil
}

// setPhase records the checkout phase. The write outlives a cancelled request so a
// dropped client cannot leave the grid stuck in processing.
func (s *DefaultBookingService) setPhase(ctx context.Context, sess *models.BookingSession, phase models.CheckoutPhase) {
	sess.Phase = phase
	sess.UpdatedAt = s.now()
	if err := s.Sessions.Save(context.WithoutCancel(ctx), sess); err != nil {
		s.log().Warn("setPhase: failed to save grid session",
			zap.String("code", sess.Code), zap.String("phase", string(phase)), zap.Error(err))
	}
}
