package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	reservationRepo "rapstation/database/repository/reservation"
	"rapstation/models"
	"rapstation/services/booking"
	"rapstation/services/obfuscation"

	"go.uber.org/zap"
)

// List returns every reservation newest first. With a reveal key the personal fields
// are decrypted; a field that fails to decrypt keeps its opaque text.
func (a *DefaultAdminService) List(ctx context.Context, search, revealKey string) ([]models.AdminReservation, error) {
	all, err := a.Repo.List(ctx, models.ReservationFilter{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", booking.ErrFetchFailed, err)
	}

	q := strings.ToLower(strings.TrimSpace(search))
	out := make([]models.AdminReservation, 0, len(all))
	for _, r := range all {
		row := models.AdminReservation{Reservation: r, Name: r.NameOpaque, Phone: r.PhoneOpaque}
		if revealKey != "" {
			name, nameOK := obfuscation.RevealOr(r.NameOpaque, revealKey)
			phone, phoneOK := obfuscation.RevealOr(r.PhoneOpaque, revealKey)
			row.Name, row.Phone = name, phone
			row.Revealed = nameOK && phoneOK
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(r.Code), q) &&
			!strings.Contains(strings.ToLower(row.Name), q) &&
			!strings.Contains(strings.ToLower(r.NameOpaque), q) {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

// UpdateStatus moves a reservation through its lifecycle. Terminal statuses free the slot.
func (a *DefaultAdminService) UpdateStatus(ctx context.Context, code, status string) (*models.Reservation, error) {
	st, ok := models.ParseStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}
	if err := a.Repo.UpdateStatus(ctx, code, st); err != nil {
		if errors.Is(err, reservationRepo.ErrNotFound) {
			return nil, booking.ErrReservationNotFound
		}
		return nil, fmt.Errorf("%w: %v", booking.ErrStoreWrite, err)
	}
	a.log().Info("UpdateStatus: reservation updated", zap.String("code", code), zap.String("status", string(st)))

	res, err := a.Repo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", booking.ErrFetchFailed, err)
	}
	return res, nil
}

func (a *DefaultAdminService) Delete(ctx context.Context, code string) error {
	if err := a.Repo.Delete(ctx, code); err != nil {
		if errors.Is(err, reservationRepo.ErrNotFound) {
			return booking.ErrReservationNotFound
		}
		return fmt.Errorf("%w: %v", booking.ErrStoreWrite, err)
	}
	a.log().Info("Delete: reservation removed", zap.String("code", code))
	return nil
}
