package booking

import (
	"fmt"
	"sort"
	"strings"
)

// BookingError is a domain failure the HTTP layer maps to a status code.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newBookingError(code, msg string) *BookingError {
	return &BookingError{Code: code, Message: msg}
}

var (
	ErrSelectionConflict   = newBookingError("selection_conflict", "the selected range crosses an hour that is already booked")
	ErrCommitConflict      = newBookingError("commit_conflict", "this time slot was just taken by someone else, please choose another time")
	ErrFetchFailed         = newBookingError("fetch_failed", "could not load existing reservations")
	ErrStoreWrite          = newBookingError("store_write_failed", "could not save the reservation")
	ErrCheckoutInProgress  = newBookingError("checkout_in_progress", "checkout is already being processed")
	ErrNoSelection         = newBookingError("no_selection", "pick a start hour first")
	ErrPaymentRequired     = newBookingError("payment_required", "pick a payment method first")
	ErrReservationNotFound = newBookingError("not_found", "reservation not found")
	ErrAlreadyCommitted    = newBookingError("already_committed", "this reservation already has a confirmed time slot")
)

// ValidationError collects per-field input problems.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}
