package models

import "time"

// CheckoutPhase mirrors the payment button state of the booking page.
type CheckoutPhase string

const (
	PhaseIdle       CheckoutPhase = "idle"
	PhaseProcessing CheckoutPhase = "processing"
	PhaseSuccess    CheckoutPhase = "success"
)

// BookingSession holds grid state for one reservation between clicks.
type BookingSession struct {
	Code      string         `json:"code"`
	Date      string         `json:"date"`
	Resource  string         `json:"resource"`
	Selection SelectionRange `json:"selection"`
	Blocked   []string       `json:"blocked"`
	Phase     CheckoutPhase  `json:"phase"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// GridView is the response for the slot picker.
type GridView struct {
	Code       string         `json:"code"`
	Date       string         `json:"date"`
	Resource   string         `json:"resource"`
	Slots      []GridSlot     `json:"slots"`
	Selection  SelectionRange `json:"selection"`
	State      SelectionState `json:"state"`
	Price      int64          `json:"price"`
	HourlyRate int64          `json:"hourlyRate"`
	Phase      CheckoutPhase  `json:"phase"`
}
