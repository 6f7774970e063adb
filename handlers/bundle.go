// File: handlers/bundle.go
package handlers

import (
	"go.uber.org/zap"

	"portfolio/models"
	"portfolio/services/analytics"
	"portfolio/services/booking"
	"portfolio/services/notification"
	"portfolio/services/scheduling"
)

// Handler carries the service collaborators for all HTTP endpoints.
type Handler struct {
	Availability scheduling.AvailabilityService
	Booking      booking.BookingService
	Tracking     analytics.TrackingService
	Reports      analytics.ReportService
	Emails       notification.Service
	Projects     []models.Project
	Logger       *zap.Logger
}

func NewHandler(
	availability scheduling.AvailabilityService,
	bookingSvc booking.BookingService,
	tracking analytics.TrackingService,
	reports analytics.ReportService,
	emails notification.Service,
	projects []models.Project,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Availability: availability,
		Booking:      bookingSvc,
		Tracking:     tracking,
		Reports:      reports,
		Emails:       emails,
		Projects:     projects,
		Logger:       logger,
	}
}
