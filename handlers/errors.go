package handlers

import (
	"errors"
	"net/http"

	"rapstation/services/admin"
	"rapstation/services/booking"
	"rapstation/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var bookingErrorStatus = map[string]int{
	"selection_conflict":   http.StatusConflict,
	"commit_conflict":      http.StatusConflict,
	"checkout_in_progress": http.StatusConflict,
	"already_committed":    http.StatusConflict,
	"fetch_failed":         http.StatusServiceUnavailable,
	"store_write_failed":   http.StatusInternalServerError,
	"no_selection":         http.StatusBadRequest,
	"payment_required":     http.StatusBadRequest,
	"not_found":            http.StatusNotFound,
}

// respondError maps service errors onto HTTP responses.
func respondError(c *gin.Context, err error) {
	logger := getLogger(c)

	var ve *booking.ValidationError
	if errors.As(err, &ve) {
		utils.JSONValidationError(c, ve.Fields)
		return
	}

	var be *booking.BookingError
	if errors.As(err, &be) {
		status, ok := bookingErrorStatus[be.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		if status >= http.StatusInternalServerError {
			logger.Error("Handler: request failed", zap.String("code", be.Code), zap.Error(err))
		}
		utils.JSONError(c, status, be.Code, be.Message)
		return
	}

	switch {
	case errors.Is(err, admin.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, admin.ErrUnknownStatus):
		utils.JSONError(c, http.StatusBadRequest, "unknown_status", err.Error())
	case errors.Is(err, admin.ErrLoginDisabled):
		utils.JSONError(c, http.StatusServiceUnavailable, "login_disabled", err.Error())
	default:
		logger.Error("Handler: unexpected error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", "Something went wrong")
	}
}
