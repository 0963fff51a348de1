// File: database/repository/reservation/memory.go
package reservationRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"rapstation/models"
)

// MemoryReservationRepo keeps reservations in process. Used by tests and STORE_DRIVER=memory.
type MemoryReservationRepo struct {
	mu   sync.RWMutex
	rows map[string]models.Reservation
	now  func() time.Time
}

// NewMemoryReservationRepo returns an empty store, optionally seeded.
func NewMemoryReservationRepo(seed ...models.Reservation) *MemoryReservationRepo {
	r := &MemoryReservationRepo{
		rows: make(map[string]models.Reservation),
		now:  func() time.Time { return time.Now().UTC() },
	}
	for i, s := range seed {
		if s.CreatedAt.IsZero() {
			// keep seed order stable for newest-first listing
			s.CreatedAt = time.Unix(int64(i), 0).UTC()
		}
		r.rows[s.Code] = s
	}
	return r
}

func (r *MemoryReservationRepo) List(_ context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Reservation{}
	for _, res := range r.rows {
		if filter.Matches(res) {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Code < out[j].Code
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryReservationRepo) GetByCode(_ context.Context, code string) (*models.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.rows[code]
	if !ok {
		return nil, ErrNotFound
	}
	return &res, nil
}

func (r *MemoryReservationRepo) Insert(_ context.Context, res *models.Reservation) (*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rows[res.Code]; exists {
		return nil, ErrDuplicateCode
	}
	now := r.now()
	if res.CreatedAt.IsZero() {
		res.CreatedAt = now
	}
	res.UpdatedAt = now
	r.rows[res.Code] = *res
	out := *res
	return &out, nil
}

func (r *MemoryReservationRepo) UpsertByCode(_ context.Context, code string, fields models.ReservationFields) (*models.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	res, ok := r.rows[code]
	if !ok {
		res = models.Reservation{
			Code:      code,
			Status:    models.StatusRequested,
			Interval:  models.IntervalUnselected,
			CreatedAt: now,
		}
	}
	fields.Apply(&res)
	res.UpdatedAt = now
	r.rows[code] = res
	return &res, nil
}

func (r *MemoryReservationRepo) UpdateStatus(_ context.Context, code string, status models.ReservationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.rows[code]
	if !ok {
		return ErrNotFound
	}
	res.Status = status
	res.UpdatedAt = r.now()
	r.rows[code] = res
	return nil
}

func (r *MemoryReservationRepo) CancelPlaceholder(_ context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.rows[code]
	if !ok || res.Status != models.StatusRequested || res.HasInterval() {
		return false, nil
	}
	res.Status = models.StatusCancelled
	res.UpdatedAt = r.now()
	r.rows[code] = res
	return true, nil
}

func (r *MemoryReservationRepo) Delete(_ context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[code]; !ok {
		return ErrNotFound
	}
	delete(r.rows, code)
	return nil
}
