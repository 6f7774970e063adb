// File: handlers/booking.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio/middleware"
	"portfolio/models"
	"portfolio/services/analytics"
	"portfolio/services/booking"
	"portfolio/utils"
)

// BookMeeting handles POST /api/book-meeting.
func (h *Handler) BookMeeting(c *gin.Context) {
	var req models.BookMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	meta := booking.BookingMeta{
		IP:        middleware.GetClientIP(c),
		UserAgent: c.GetHeader("User-Agent"),
		Referer:   c.GetHeader("Referer"),
	}

	resp, err := h.Booking.Book(c.Request.Context(), req, meta)
	if err != nil {
		h.bookingError(c, err)
		return
	}

	// Best-effort funnel update; a booking with no matching view record is
	// fine.
	trackMeta := analytics.RequestMeta{IP: meta.IP, UserAgent: meta.UserAgent, Referrer: meta.Referer}
	if err := h.Tracking.MarkMeetingScheduled(c.Request.Context(), req.SessionID, trackMeta, req.Duration, resp.Timezone); err != nil {
		h.Logger.Warn("failed to mark meeting scheduled on tracking record",
			zap.String("meetingId", resp.MeetingID), zap.Error(err))
	}

	c.JSON(http.StatusOK, resp)
}

// CancelMeeting handles DELETE /api/cancel-meeting.
func (h *Handler) CancelMeeting(c *gin.Context) {
	meetingID := c.Query("meetingId")
	token := c.Query("token")
	if meetingID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing required parameter", "meetingId is required")
		return
	}

	if err := h.Booking.Cancel(c.Request.Context(), meetingID, token); err != nil {
		h.bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Meeting canceled successfully",
	})
}

// RescheduleMeeting handles PATCH /api/reschedule-meeting.
func (h *Handler) RescheduleMeeting(c *gin.Context) {
	var req models.RescheduleMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.MeetingID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing required field", "meetingId is required")
		return
	}

	resp, err := h.Booking.Reschedule(c.Request.Context(), req)
	if err != nil {
		h.bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// bookingError maps booking domain errors onto HTTP statuses.
func (h *Handler) bookingError(c *gin.Context, err error) {
	var verr *booking.ValidationError
	var pfe *booking.PartialFailureError

	switch {
	case errors.As(err, &verr):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", verr.Error())
	case errors.Is(err, booking.ErrSlotTaken):
		utils.JSONError(c, http.StatusConflict, "Slot no longer available", "the selected time was just booked, pick another slot")
	case errors.Is(err, booking.ErrMeetingNotFound):
		utils.JSONError(c, http.StatusNotFound, "Meeting not found", "")
	case errors.Is(err, booking.ErrInvalidToken):
		utils.JSONError(c, http.StatusForbidden, "Invalid token", "")
	case errors.Is(err, booking.ErrMeetingCanceled):
		utils.JSONError(c, http.StatusConflict, "Meeting already canceled", "")
	case errors.As(err, &pfe):
		utils.JSONError(c, http.StatusInternalServerError, "Booking incomplete", "the booking could not be saved; any created calendar event was rolled back")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Booking failed", err.Error())
	}
}
