// File: handlers/tracking.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/middleware"
	"portfolio/services/analytics"
	"portfolio/utils"
)

func (h *Handler) requestMeta(c *gin.Context) analytics.RequestMeta {
	return analytics.RequestMeta{
		IP:        middleware.GetClientIP(c),
		UserAgent: c.GetHeader("User-Agent"),
		Referrer:  c.GetHeader("Referer"),
	}
}

// TrackMeetEvent handles POST /api/meet-tracking. The page sends page_view,
// step_completion and interaction events as the visitor moves through the
// booking funnel.
func (h *Handler) TrackMeetEvent(c *gin.Context) {
	var event analytics.MeetEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	result, err := h.Tracking.TrackMeetEvent(c.Request.Context(), event, h.requestMeta(c))
	if err != nil {
		if errors.Is(err, analytics.ErrUnknownAction) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Invalid action or no matching view found",
			})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Failed to track analytics", err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

// RecordResumeClick handles POST /api/resume-click.
func (h *Handler) RecordResumeClick(c *gin.Context) {
	sessionID, err := h.Tracking.RecordResumeClick(c.Request.Context(), h.requestMeta(c))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to track resume click", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"sessionId": sessionID,
		"message":   "Resume view tracked successfully",
	})
}

// RecordResumeDownload handles POST /api/resume-download.
func (h *Handler) RecordResumeDownload(c *gin.Context) {
	var body struct {
		SessionID string `json:"sessionId"`
	}
	// An empty or malformed body falls back to IP matching.
	_ = c.ShouldBindJSON(&body)

	matched, err := h.Tracking.MarkResumeDownloaded(c.Request.Context(), body.SessionID, h.requestMeta(c))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to track resume download", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"matched": matched,
	})
}
