package handlers

import (
	"net/http"

	"rapstation/models"
	"rapstation/services/booking"
	"rapstation/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the customer booking flow.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// CreatePlaceholder handles POST /api/bookings.
func (h *BookingHandler) CreatePlaceholder(c *gin.Context) {
	logger := getLogger(c)
	var input booking.PlaceholderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logger.Debug("Handler: invalid booking form", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", "request body must be a booking form")
		return
	}

	res, err := h.Service.CreatePlaceholder(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.PlaceholderResponse{
		Code:     res.Code,
		Resource: res.Resource,
		Date:     res.Date,
		Status:   string(res.Status),
	})
}

// GetGrid handles GET /api/bookings/:code/grid.
func (h *BookingHandler) GetGrid(c *gin.Context) {
	view, err := h.Service.Grid(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type clickRequest struct {
	Label string `json:"label" binding:"required"`
	Index *int   `json:"index" binding:"required"`
}

// ClickSlot handles POST /api/bookings/:code/grid/click.
func (h *BookingHandler) ClickSlot(c *gin.Context) {
	var req clickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", "label and index are required")
		return
	}

	view, err := h.Service.Click(c.Request.Context(), c.Param("code"), req.Label, *req.Index)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type checkoutRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

// Checkout handles POST /api/bookings/:code/checkout.
func (h *BookingHandler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", "request body must be JSON")
		return
	}

	out, err := h.Service.Checkout(c.Request.Context(), c.Param("code"), req.PaymentMethod)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("Handler: checkout complete", zap.String("code", out.Reservation.Code))
	c.JSON(http.StatusOK, out)
}

// Track handles GET /api/bookings/track.
func (h *BookingHandler) Track(c *gin.Context) {
	rows, err := h.Service.Track(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": rows})
}
