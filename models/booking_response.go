// models/booking_response.go
package models

// BookingResponse is returned by the checkout endpoint.
type BookingResponse struct {
	// Reservation is the persisted record after checkout.
	Reservation *Reservation `json:"reservation,omitempty"`
	// Price is the amount billed for the committed range.
	Price int64 `json:"price"`
	// Message is a human readable summary for the confirmation screen.
	Message string `json:"message,omitempty"`
}

// PlaceholderResponse is returned when a booking code has been issued.
type PlaceholderResponse struct {
	Code     string `json:"code"`
	Resource string `json:"resource"`
	Date     string `json:"date"`
	Status   string `json:"status"`
}
