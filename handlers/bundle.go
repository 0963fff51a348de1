// File: rapstation/handlers/bundle.go
package handlers

import (
	"rapstation/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Booking endpoints
	CreatePlaceholder gin.HandlerFunc
	GetGrid           gin.HandlerFunc
	ClickSlot         gin.HandlerFunc
	Checkout          gin.HandlerFunc
	TrackBookings     gin.HandlerFunc

	// Admin endpoints
	AdminLogin        gin.HandlerFunc
	ListReservations  gin.HandlerFunc
	UpdateStatus      gin.HandlerFunc
	DeleteReservation gin.HandlerFunc
	AdminStats        gin.HandlerFunc

	// Health
	Health *utils.HealthMonitor

	// Middleware settings
	JWTSecret   []byte
	CORSOrigins []string
}

// NewHandlerBundle wires handler methods into a bundle.
func NewHandlerBundle(bh *BookingHandler, ah *AdminHandler) *HandlerBundle {
	return &HandlerBundle{
		CreatePlaceholder: bh.CreatePlaceholder,
		GetGrid:           bh.GetGrid,
		ClickSlot:         bh.ClickSlot,
		Checkout:          bh.Checkout,
		TrackBookings:     bh.Track,

		AdminLogin:        ah.Login,
		ListReservations:  ah.ListReservations,
		UpdateStatus:      ah.UpdateStatus,
		DeleteReservation: ah.DeleteReservation,
		AdminStats:        ah.Stats,
	}
}
