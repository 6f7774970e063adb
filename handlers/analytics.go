// File: handlers/analytics.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/utils"
)

// GetMeetAnalytics handles GET /api/admin/meet-analytics (admin).
func (h *Handler) GetMeetAnalytics(c *gin.Context) {
	report, err := h.Reports.MeetReport(c.Request.Context(), c.DefaultQuery("period", "30d"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to build meet analytics", err.Error())
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetResumeAnalytics handles GET /api/admin/resume-analytics (admin).
func (h *Handler) GetResumeAnalytics(c *gin.Context) {
	report, err := h.Reports.ResumeReport(c.Request.Context(), c.DefaultQuery("period", "30d"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to build resume analytics", err.Error())
		return
	}
	c.JSON(http.StatusOK, report)
}
