package models

import (
	"strings"
	"time"
)

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	StatusRequested  ReservationStatus = "REQUESTED"
	StatusPaid       ReservationStatus = "PAID"
	StatusInProgress ReservationStatus = "IN_PROGRESS"
	StatusCompleted  ReservationStatus = "COMPLETED"
	StatusCancelled  ReservationStatus = "CANCELLED"
)

// IntervalUnselected is stored until the customer checks out with a chosen range.
const IntervalUnselected = "UNSELECTED"

// OccupyingStatuses hold a time slot; terminal statuses free it.
var OccupyingStatuses = []ReservationStatus{StatusRequested, StatusPaid, StatusInProgress}

// AllStatuses lists every valid status in lifecycle order.
var AllStatuses = []ReservationStatus{StatusRequested, StatusPaid, StatusInProgress, StatusCompleted, StatusCancelled}

// ParseStatus normalises s and reports whether it names a known status.
func ParseStatus(s string) (ReservationStatus, bool) {
	st := ReservationStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllStatuses {
		if st == known {
			return st, true
		}
	}
	return "", false
}

// IsOccupying reports whether the status blocks its interval.
func (s ReservationStatus) IsOccupying() bool {
	for _, o := range OccupyingStatuses {
		if s == o {
			return true
		}
	}
	return false
}

// IsPaid reports whether the status counts towards revenue.
func (s ReservationStatus) IsPaid() bool {
	return s == StatusPaid || s == StatusInProgress || s == StatusCompleted
}

// Reservation is the persisted booking record.
type Reservation struct {
	Code          string            `bson:"code" json:"code"`                                       // Unique booking code, e.g. BK-7X9
	Resource      string            `bson:"resource" json:"resource"`                               // Resource label, e.g. "PC Gaming"
	Date          string            `bson:"date" json:"date"`                                       // Booking date in "YYYY-MM-DD" format
	Interval      string            `bson:"interval" json:"interval"`                               // "HH:00 - HH:00" or UNSELECTED
	Status        ReservationStatus `bson:"status" json:"status"`                                   // Lifecycle state
	NameOpaque    string            `bson:"name_opaque" json:"name"`                                // Obfuscated customer name
	PhoneOpaque   string            `bson:"phone_opaque" json:"phone"`                              // Obfuscated WhatsApp number
	PaymentMethod string            `bson:"payment_method,omitempty" json:"paymentMethod,omitempty"` // Decorative, chosen at checkout
	CreatedAt     time.Time         `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time         `bson:"updated_at" json:"updatedAt"`
}

// HasInterval reports whether a range has been chosen.
func (r Reservation) HasInterval() bool {
	return r.Interval != "" && r.Interval != IntervalUnselected
}

// ReservationFilter narrows a List call. Zero-valued fields are ignored.
type ReservationFilter struct {
	Date        string
	Resource    string
	StatusIn    []ReservationStatus
	IntervalNot string
}

// OccupyingFilter is the filter used for grid rendering and the pre-commit check.
func OccupyingFilter(date, resource string) ReservationFilter {
	return ReservationFilter{
		Date:        date,
		Resource:    resource,
		StatusIn:    OccupyingStatuses,
		IntervalNot: IntervalUnselected,
	}
}

// Matches reports whether r satisfies the filter.
func (f ReservationFilter) Matches(r Reservation) bool {
	if f.Date != "" && r.Date != f.Date {
		return false
	}
	if f.Resource != "" && r.Resource != f.Resource {
		return false
	}
	if f.IntervalNot != "" && r.Interval == f.IntervalNot {
		return false
	}
	if len(f.StatusIn) > 0 {
		found := false
		for _, s := range f.StatusIn {
			if r.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ReservationFields carries the subset of fields written by UpsertByCode.
// Nil pointers are left untouched.
type ReservationFields struct {
	Resource      *string
	Date          *string
	Interval      *string
	Status        *ReservationStatus
	NameOpaque    *string
	PhoneOpaque   *string
	PaymentMethod *string
}

// Apply copies the set fields onto r.
func (f ReservationFields) Apply(r *Reservation) {
	if f.Resource != nil {
		r.Resource = *f.Resource
	}
	if f.Date != nil {
		r.Date = *f.Date
	}
	if f.Interval != nil {
		r.Interval = *f.Interval
	}
	if f.Status != nil {
		r.Status = *f.Status
	}
	if f.NameOpaque != nil {
		r.NameOpaque = *f.NameOpaque
	}
	if f.PhoneOpaque != nil {
		r.PhoneOpaque = *f.PhoneOpaque
	}
	if f.PaymentMethod != nil {
		r.PaymentMethod = *f.PaymentMethod
	}
}

// PublicReservation is what the tracking page may show.
type PublicReservation struct {
	Code     string            `json:"code"`
	Name     string            `json:"name"`
	Resource string            `json:"resource"`
	Date     string            `json:"date"`
	Interval string            `json:"interval"`
	Status   ReservationStatus `json:"status"`
}

// Public strips the personal fields down to their opaque form.
func (r Reservation) Public() PublicReservation {
	return PublicReservation{
		Code:     r.Code,
		Name:     r.NameOpaque,
		Resource: r.Resource,
		Date:     r.Date,
		Interval: r.Interval,
		Status:   r.Status,
	}
}
