// File: routes/routes.go
package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"portfolio/config"
	"portfolio/handlers"
	"portfolio/middleware"
)

// RegisterSchedulingRoutes sets up the public booking endpoints.
func RegisterSchedulingRoutes(r *gin.Engine, h *handlers.Handler) {
	api := r.Group("/api")
	{
		api.GET("/available-slots", h.GetAvailableSlots)
		api.POST("/book-meeting", h.BookMeeting)
		api.DELETE("/cancel-meeting", h.CancelMeeting)
		api.PATCH("/reschedule-meeting", h.RescheduleMeeting)
	}
}

// RegisterTrackingRoutes sets up the telemetry write endpoints.
func RegisterTrackingRoutes(r *gin.Engine, h *handlers.Handler) {
	api := r.Group("/api")
	{
		api.POST("/meet-tracking", h.TrackMeetEvent)
		api.POST("/resume-click", h.RecordResumeClick)
		api.POST("/resume-download", h.RecordResumeDownload)
	}
}

// RegisterSiteRoutes sets up the remaining public site endpoints.
func RegisterSiteRoutes(r *gin.Engine, h *handlers.Handler) {
	api := r.Group("/api")
	{
		api.GET("/projects", h.ListProjects)
		api.POST("/contact", h.SubmitContactMessage)
	}
}

// RegisterAdminRoutes sets up the IP-restricted admin surface.
func RegisterAdminRoutes(r *gin.Engine, h *handlers.Handler) {
	allowlist := middleware.AdminIPAllowlist(config.AppConfig.AdminAllowedIPs)

	admin := r.Group("/api/admin")
	{
		admin.Use(allowlist)
		admin.GET("/meet-analytics", h.GetMeetAnalytics)
		admin.GET("/resume-analytics", h.GetResumeAnalytics)
		admin.GET("/check-google-auth", h.CheckGoogleAuth)
	}

	// The consent flow only exists to mint the calendar refresh token, so it
	// sits behind the same allow-list as the rest of the admin surface.
	auth := r.Group("/api/auth/google")
	{
		auth.Use(allowlist)
		auth.GET("", h.StartGoogleAuth)
		auth.GET("/callback", h.GoogleAuthCallback)
	}

	meetings := r.Group("/api/meetings")
	{
		meetings.Use(allowlist)
		meetings.GET("", h.ListMeetings)
		meetings.GET("/:id", h.GetMeeting)
		meetings.DELETE("/:id", h.DeleteMeeting)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, h *handlers.Handler) {
	allowOrigins := config.AppConfig.AllowedOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	RegisterHealthRoute(r)
	RegisterSchedulingRoutes(r, h)
	RegisterTrackingRoutes(r, h)
	RegisterSiteRoutes(r, h)
	RegisterAdminRoutes(r, h)
}
