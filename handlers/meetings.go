// File: handlers/meetings.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/models"
	"portfolio/services/booking"
	"portfolio/utils"
)

// ListMeetings handles GET /api/meetings (admin). Tokens never appear in the
// response; the model strips them on marshal.
func (h *Handler) ListMeetings(c *gin.Context) {
	filter := models.MeetingFilter{
		Status: c.Query("status"),
		Email:  c.Query("email"),
	}

	meetings, err := h.Booking.ListMeetings(c.Request.Context(), filter)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list meetings", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(meetings),
		"meetings": meetings,
	})
}

// GetMeeting handles GET /api/meetings/:id (admin).
func (h *Handler) GetMeeting(c *gin.Context) {
	meeting, err := h.Booking.GetMeeting(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, booking.ErrMeetingNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Meeting not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch meeting", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"meeting": meeting,
	})
}

// DeleteMeeting handles DELETE /api/meetings/:id (admin). IP authorization
// alone is not enough; the caller must also hold the cancel token.
func (h *Handler) DeleteMeeting(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		utils.JSONError(c, http.StatusForbidden, "Cancellation token is required", "")
		return
	}

	if err := h.Booking.DeleteMeeting(c.Request.Context(), c.Param("id"), token); err != nil {
		switch {
		case errors.Is(err, booking.ErrMeetingNotFound):
			utils.JSONError(c, http.StatusNotFound, "Meeting not found", "")
		case errors.Is(err, booking.ErrInvalidToken):
			utils.JSONError(c, http.StatusForbidden, "Invalid cancellation token", "")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "Failed to delete meeting", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Meeting deleted",
	})
}
