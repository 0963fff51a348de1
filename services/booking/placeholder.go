package booking

import (
	"context"
	"errors"
	"fmt"

	reservationRepo "rapstation/database/repository/reservation"
	"rapstation/models"

	"go.uber.org/zap"
)

const maxCodeAttempts = 5

// CreatePlaceholder validates the booking form and stores a REQUESTED reservation
// without a time slot.
func (s *DefaultBookingService) CreatePlaceholder(ctx context.Context, in PlaceholderInput) (*models.Reservation, error) {
	logger := s.log()
	v, err := validatePlaceholder(in, startOfDay(s.now().In(s.location())))
	if err != nil {
		return nil, err
	}
	if s.Cipher == nil {
		return nil, fmt.Errorf("obfuscation cipher not configured")
	}
	nameOpaque, err := s.Cipher.Obfuscate(v.Name)
	if err != nil {
		return nil, fmt.Errorf("obfuscate name: %w", err)
	}
	phoneOpaque, err := s.Cipher.Obfuscate(v.Phone)
	if err != nil {
		return nil, fmt.Errorf("obfuscate phone: %w", err)
	}

	var saved *models.Reservation
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code, err := s.newCode()
		if err != nil {
			return nil, fmt.Errorf("generate booking code: %w", err)
		}
		saved, err = s.Repo.Insert(ctx, &models.Reservation{
			Code:        code,
			Resource:    v.Resource.Label,
			Date:        v.Date,
			Interval:    models.IntervalUnselected,
			Status:      models.StatusRequested,
			NameOpaque:  nameOpaque,
			PhoneOpaque: phoneOpaque,
		})
		if errors.Is(err, reservationRepo.ErrDuplicateCode) {
			logger.Debug("CreatePlaceholder: booking code collision, retrying", zap.String("code", code), zap.Int("attempt", attempt))
			saved = nil
			continue
		}
		if err != nil {
			logger.Error("CreatePlaceholder: insert failed", zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrStoreWrite, err)
		}
		break
	}
	if saved == nil {
		return nil, fmt.Errorf("%w: no free booking code after %d attempts", ErrStoreWrite, maxCodeAttempts)
	}

	if s.PlaceholderTTL > 0 {
		fireAt := saved.CreatedAt.Add(s.PlaceholderTTL)
		if err := s.scheduler().SchedulePlaceholderExpiry(ctx, saved.Code, fireAt); err != nil {
			logger.Warn("CreatePlaceholder: failed to schedule expiry", zap.String("code", saved.Code), zap.Error(err))
		}
	}

	logger.Info("CreatePlaceholder: reservation requested",
		zap.String("code", saved.Code), zap.String("resource", saved.Resource), zap.String("date", saved.Date))
	return saved, nil
}

// ExpirePlaceholder cancels code when it is still REQUESTED without an interval.
// A checkout running for code makes it return ErrCheckoutInProgress so the task is retried.
func (s *DefaultBookingService) ExpirePlaceholder(ctx context.Context, code string) (bool, error) {
	logger := s.log().With(zap.String("code", code))

	if s.Sessions != nil {
		locked, err := s.Sessions.Lock(ctx, code)
		if err != nil {
			return false, fmt.Errorf("acquire checkout lock: %w", err)
		}
		if !locked {
			logger.Debug("ExpirePlaceholder: checkout in progress, deferring")
			return false, ErrCheckoutInProgress
		}
		defer func() {
			if err := s.Sessions.Unlock(context.WithoutCancel(ctx), code); err != nil {
				logger.Warn("ExpirePlaceholder: failed to release lock", zap.Error(err))
			}
		}()
	}

	// conditional write; a checkout that committed first is left alone
	changed, err := s.Repo.CancelPlaceholder(ctx, code)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}
	if !changed {
		return false, nil
	}
	if s.Sessions != nil {
		if err := s.Sessions.Delete(ctx, code); err != nil {
			logger.Warn("ExpirePlaceholder: failed to drop grid session", zap.Error(err))
		}
	}
	logger.Info("ExpirePlaceholder: placeholder cancelled")
	return true, nil
}
