package models

// AdminStats are the dashboard counters.
type AdminStats struct {
	Total   int   `json:"total"`
	Paid    int   `json:"paid"`
	Active  int   `json:"active"`
	Revenue int64 `json:"revenue"`
}

// AdminReservation is a reservation as shown on the admin panel.
// Name and Phone are revealed when the caller supplied a working key.
type AdminReservation struct {
	Reservation
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Revealed bool   `json:"revealed"`
}
