package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-reservation-backend/domain"
)

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// JSONDomainError maps the core's failure taxonomy onto HTTP statuses. The
// services themselves never format responses; this is the only place the two
// worlds meet.
func JSONDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNoAvailability):
		JSONError(c, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		JSONError(c, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrRoomNotFound),
		errors.Is(err, domain.ErrReservationNotFound),
		errors.Is(err, domain.ErrPaymentNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		JSONError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrLedgerCorruption):
		// Non-recoverable: surface as a server fault so it alerts, never as
		// a user-facing business outcome.
		JSONError(c, http.StatusInternalServerError, err.Error())
	case errors.Is(err, domain.ErrCurrencyMismatch):
		JSONError(c, http.StatusInternalServerError, err.Error())
	default:
		JSONError(c, http.StatusBadRequest, err.Error())
	}
}
