package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err), zap.String("path", c.FullPath()))

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error:   "internal_error",
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, code, message string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("code", code), zap.Int("status", status), zap.String("path", c.FullPath()))
	c.AbortWithStatusJSON(status, ErrorResponse{Error: code, Message: message})
}

// JSONValidationError sends a 400 listing per-field problems.
func JSONValidationError(c *gin.Context, fields map[string]string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Error:   "validation_failed",
		Message: "Some fields are invalid",
		Fields:  fields,
	})
}
