// File: handlers/availability.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"portfolio/services/scheduling"
	"portfolio/utils"
)

// GetAvailableSlots handles GET /api/available-slots.
func (h *Handler) GetAvailableSlots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing required parameter", "date is required (YYYY-MM-DD)")
		return
	}

	duration := 30
	if raw := c.Query("duration"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid duration", "duration must be a number of minutes")
			return
		}
		duration = parsed
	}

	resp, err := h.Availability.AvailableSlots(c.Request.Context(), scheduling.AvailabilityRequest{
		Date:            date,
		Duration:        duration,
		DisplayTimezone: c.Query("timezone"),
	})
	if err != nil {
		switch {
		case errors.Is(err, scheduling.ErrInvalidDate), errors.Is(err, scheduling.ErrInvalidDuration):
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		case errors.Is(err, scheduling.ErrCalendarUnavailable):
			utils.JSONError(c, http.StatusServiceUnavailable, "Calendar unavailable", "could not verify availability, try again shortly")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Failed to compute availability", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
