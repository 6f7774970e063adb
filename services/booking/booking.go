// File: services/booking/booking.go
package booking

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	meetingRepo "portfolio/database/repository/meeting"
	"portfolio/models"
	"portfolio/services/calendar"
	"portfolio/services/notification"
	"portfolio/services/scheduling"
	"portfolio/services/tasks"
)

const conflictCheckTimeout = 10 * time.Second

// BookingMeta is the request context recorded alongside a booking. It is
// written after the booking itself; a metadata failure never fails the
// booking.
type BookingMeta struct {
	IP        string
	UserAgent string
	Referer   string
}

// BookingService owns the meeting lifecycle: creation against the external
// calendar, token-gated cancel and reschedule, and the admin views.
type BookingService interface {
	Book(ctx context.Context, req models.BookMeetingRequest, meta BookingMeta) (*models.BookMeetingResponse, error)
	Cancel(ctx context.Context, meetingID, token string) error
	Reschedule(ctx context.Context, req models.RescheduleMeetingRequest) (*models.RescheduleMeetingResponse, error)

	ListMeetings(ctx context.Context, filter models.MeetingFilter) ([]models.Meeting, error)
	GetMeeting(ctx context.Context, id string) (*models.Meeting, error)
	DeleteMeeting(ctx context.Context, id, token string) error
}

// DefaultBookingService writes the calendar first and the database second,
// compensating the calendar write when persistence fails.
type DefaultBookingService struct {
	Repo     meetingRepo.MeetingRepository
	Calendar calendar.Service
	Emails   notification.Service
	Tasks    *asynq.Client
	Logger   *zap.Logger

	AdminZone        string
	AllowedDurations []int
	BaseURL          string
	OwnerName        string
	OwnerEmail       string
	ReminderLead     time.Duration

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Book creates the calendar event and persists the meeting. The dateTime in
// the request is the adminStart instant issued by the availability endpoint
// and is used verbatim; the timezone field only labels how the guest sees it.
func (s *DefaultBookingService) Book(ctx context.Context, req models.BookMeetingRequest, meta BookingMeta) (*models.BookMeetingResponse, error) {
	adminStart, tz, err := s.validate(req)
	if err != nil {
		return nil, err
	}
	adminEnd := adminStart.Add(time.Duration(req.Duration) * time.Minute)

	// The slot list the guest picked from may be stale; re-check the window
	// right before writing.
	if err := s.ensureFree(ctx, adminStart, adminEnd); err != nil {
		return nil, err
	}

	meetingID := uuid.NewString()
	rescheduleToken, err := newSecureToken()
	if err != nil {
		return nil, err
	}
	cancelToken, err := newSecureToken()
	if err != nil {
		return nil, err
	}

	created, err := s.Calendar.CreateEvent(ctx, calendar.Event{
		Summary:     fmt.Sprintf("Discussion: %s & %s", req.Name, s.OwnerName),
		Description: s.eventDescription(req.Purpose, tz, adminStart),
		Start:       adminStart,
		End:         adminEnd,
		Timezone:    s.AdminZone,
		Attendees:   []string{req.Email, s.OwnerEmail},
		RequestID:   meetingID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar event: %w", err)
	}

	now := s.now().UTC()
	meeting := &models.Meeting{
		ID:              meetingID,
		Name:            req.Name,
		Email:           req.Email,
		Purpose:         req.Purpose,
		DateTime:        adminStart,
		Duration:        req.Duration,
		EventID:         created.EventID,
		MeetLink:        created.MeetLink,
		RescheduleToken: rescheduleToken,
		CancelToken:     cancelToken,
		Status:          models.StatusConfirmed,
		CreatedAt:       now,
		Timezone:        tz,
		AdminDateTime:   adminStart,
	}

	if err := s.Repo.Create(ctx, meeting); err != nil {
		// The event exists but the booking does not; undo the calendar
		// write so the slot is not silently consumed.
		compensated := true
		if delErr := s.Calendar.DeleteEvent(ctx, created.EventID); delErr != nil {
			compensated = false
			s.Logger.Error("failed to compensate calendar event after persistence failure",
				zap.String("meetingId", meetingID),
				zap.String("eventId", created.EventID),
				zap.Error(delErr))
		}
		return nil, &PartialFailureError{EventID: created.EventID, Compensated: compensated, Err: err}
	}

	if err := s.Repo.SetMetadata(ctx, meetingID, map[string]string{
		"ipAddress":        meta.IP,
		"userAgent":        meta.UserAgent,
		"referer":          meta.Referer,
		"bookingSource":    "website",
		"bookingTimestamp": now.Format(time.RFC3339),
	}); err != nil {
		s.Logger.Warn("failed to record booking metadata",
			zap.String("meetingId", meetingID), zap.Error(err))
	}

	calendarLink := calendar.EventLink(created.EventID)
	rescheduleLink := fmt.Sprintf("%s/meet/reschedule?id=%s&token=%s", s.BaseURL, meetingID, rescheduleToken)
	cancelLink := fmt.Sprintf("%s/meet/cancel?id=%s&token=%s", s.BaseURL, meetingID, cancelToken)

	go s.sendEmail("confirmation", meetingID, func() error {
		return s.Emails.SendConfirmation(req.Email, notification.MeetingEmailData{
			Name:           req.Name,
			DateTime:       adminStart,
			Duration:       req.Duration,
			Timezone:       tz,
			Purpose:        req.Purpose,
			MeetLink:       created.MeetLink,
			CalendarLink:   calendarLink,
			RescheduleLink: rescheduleLink,
			CancelLink:     cancelLink,
		})
	})

	s.enqueueReminder(meeting)

	s.Logger.Info("meeting booked",
		zap.String("meetingId", meetingID),
		zap.Time("adminStart", adminStart),
		zap.Int("duration", req.Duration),
		zap.String("timezone", tz))

	return &models.BookMeetingResponse{
		Success:        true,
		MeetingID:      meetingID,
		MeetLink:       created.MeetLink,
		CalendarLink:   calendarLink,
		RescheduleLink: rescheduleLink,
		CancelLink:     cancelLink,
		Timezone:       tz,
		DateTime:       adminStart.UTC().Format(time.RFC3339),
	}, nil
}

// authorize resolves a meeting by its capability token using the indexed
// token lookup, falling back to an ID fetch to tell a missing meeting apart
// from a bad token.
func (s *DefaultBookingService) authorize(ctx context.Context, meetingID, kind, token string) (*models.Meeting, error) {
	if token != "" {
		meeting, err := s.Repo.GetByToken(ctx, kind, token)
		if err != nil {
			return nil, err
		}
		if meeting != nil && meeting.ID == meetingID {
			return meeting, nil
		}
	}

	meeting, err := s.Repo.GetByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if meeting == nil {
		return nil, ErrMeetingNotFound
	}
	return nil, ErrInvalidToken
}

// Cancel tears down a meeting via its cancel token. The calendar delete is
// best-effort; the status change is what makes the cancellation stick.
func (s *DefaultBookingService) Cancel(ctx context.Context, meetingID, token string) error {
	meeting, err := s.authorize(ctx, meetingID, meetingRepo.TokenCancel, token)
	if err != nil {
		return err
	}
	if meeting.Status == models.StatusCanceled {
		return ErrMeetingCanceled
	}

	if meeting.EventID != "" {
		if err := s.Calendar.DeleteEvent(ctx, meeting.EventID); err != nil {
			s.Logger.Warn("failed to delete calendar event on cancel",
				zap.String("meetingId", meetingID),
				zap.String("eventId", meeting.EventID),
				zap.Error(err))
		}
	}

	canceledAt := s.now().UTC()
	if _, err := s.Repo.Update(ctx, meetingID, meetingRepo.MeetingPatch{
		Status:     models.StatusCanceled,
		CanceledAt: &canceledAt,
	}); err != nil {
		return err
	}

	go s.sendEmail("cancellation", meetingID, func() error {
		return s.Emails.SendCancellation(meeting.Email, notification.MeetingEmailData{
			Name:     meeting.Name,
			DateTime: meeting.AdminDateTime,
			Duration: meeting.Duration,
			Timezone: meeting.Timezone,
		})
	})

	s.Logger.Info("meeting canceled", zap.String("meetingId", meetingID))
	return nil
}

// Reschedule moves a meeting to a new admin-zone instant via its reschedule
// token. A canceled meeting stays canceled.
func (s *DefaultBookingService) Reschedule(ctx context.Context, req models.RescheduleMeetingRequest) (*models.RescheduleMeetingResponse, error) {
	meeting, err := s.authorize(ctx, req.MeetingID, meetingRepo.TokenReschedule, req.Token)
	if err != nil {
		return nil, err
	}
	if meeting.Status == models.StatusCanceled {
		return nil, ErrMeetingCanceled
	}

	newStart, err := time.Parse(time.RFC3339, req.NewDateTime)
	if err != nil {
		return nil, &ValidationError{Field: "newDateTime", Message: "must be an RFC 3339 timestamp"}
	}
	if !newStart.After(s.now()) {
		return nil, &ValidationError{Field: "newDateTime", Message: "must be in the future"}
	}
	newEnd := newStart.Add(time.Duration(meeting.Duration) * time.Minute)

	if err := s.ensureFree(ctx, newStart, newEnd); err != nil {
		return nil, err
	}

	if meeting.EventID != "" {
		if err := s.Calendar.UpdateEvent(ctx, meeting.EventID, calendar.EventPatch{
			Start:    &newStart,
			End:      &newEnd,
			Timezone: s.AdminZone,
		}); err != nil {
			return nil, fmt.Errorf("failed to move calendar event: %w", err)
		}
	}

	updated, err := s.Repo.Update(ctx, req.MeetingID, meetingRepo.MeetingPatch{
		Status:        models.StatusRescheduled,
		DateTime:      &newStart,
		AdminDateTime: &newStart,
	})
	if err != nil {
		return nil, err
	}

	s.enqueueReminder(updated)

	go s.sendEmail("reschedule", req.MeetingID, func() error {
		return s.Emails.SendReschedule(meeting.Email, notification.MeetingEmailData{
			Name:     meeting.Name,
			DateTime: newStart,
			Duration: meeting.Duration,
			Timezone: meeting.Timezone,
			MeetLink: meeting.MeetLink,
		})
	})

	s.Logger.Info("meeting rescheduled",
		zap.String("meetingId", req.MeetingID),
		zap.Time("newStart", newStart))

	return &models.RescheduleMeetingResponse{
		Success:     true,
		MeetingID:   req.MeetingID,
		NewDateTime: newStart.UTC().Format(time.RFC3339),
		MeetLink:    meeting.MeetLink,
		Message:     "Meeting rescheduled successfully",
		Timezone:    meeting.Timezone,
	}, nil
}

func (s *DefaultBookingService) ListMeetings(ctx context.Context, filter models.MeetingFilter) ([]models.Meeting, error) {
	return s.Repo.List(ctx, filter)
}

func (s *DefaultBookingService) GetMeeting(ctx context.Context, id string) (*models.Meeting, error) {
	meeting, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if meeting == nil {
		return nil, ErrMeetingNotFound
	}
	return meeting, nil
}

// DeleteMeeting removes a meeting outright, including its calendar event
// when one exists. Even IP-authorized callers must present the meeting's
// cancel token.
func (s *DefaultBookingService) DeleteMeeting(ctx context.Context, id, token string) error {
	meeting, err := s.authorize(ctx, id, meetingRepo.TokenCancel, token)
	if err != nil {
		return err
	}

	if meeting.EventID != "" && meeting.Status != models.StatusCanceled {
		if err := s.Calendar.DeleteEvent(ctx, meeting.EventID); err != nil {
			s.Logger.Warn("failed to delete calendar event on admin delete",
				zap.String("meetingId", id), zap.Error(err))
		}
	}

	return s.Repo.Delete(ctx, id)
}

func (s *DefaultBookingService) validate(req models.BookMeetingRequest) (time.Time, string, error) {
	if strings.TrimSpace(req.Name) == "" {
		return time.Time{}, "", &ValidationError{Field: "name", Message: "is required"}
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return time.Time{}, "", &ValidationError{Field: "email", Message: "must be a valid address"}
	}
	if req.DateTime == "" {
		return time.Time{}, "", &ValidationError{Field: "dateTime", Message: "is required"}
	}
	if !s.durationAllowed(req.Duration) {
		return time.Time{}, "", &ValidationError{
			Field:   "duration",
			Message: fmt.Sprintf("must be one of %v minutes", s.AllowedDurations),
		}
	}

	adminStart, err := time.Parse(time.RFC3339, req.DateTime)
	if err != nil {
		return time.Time{}, "", &ValidationError{Field: "dateTime", Message: "must be an RFC 3339 timestamp"}
	}
	if !adminStart.After(s.now()) {
		return time.Time{}, "", &ValidationError{Field: "dateTime", Message: "must be in the future"}
	}

	tz := req.Timezone
	if tz == "" {
		tz = s.AdminZone
	}
	return adminStart, tz, nil
}

func (s *DefaultBookingService) durationAllowed(d int) bool {
	for _, allowed := range s.AllowedDurations {
		if d == allowed {
			return true
		}
	}
	return false
}

// ensureFree re-checks the window against the calendar immediately before a
// write. Narrows the race with a competing booking; the calendar itself
// remains the arbiter for whatever slips through.
func (s *DefaultBookingService) ensureFree(ctx context.Context, start, end time.Time) error {
	busyCtx, cancel := context.WithTimeout(ctx, conflictCheckTimeout)
	defer cancel()

	busy, err := s.Calendar.QueryBusy(busyCtx, start, end)
	if err != nil {
		return fmt.Errorf("failed to verify slot availability: %w", err)
	}
	for _, b := range busy {
		if scheduling.Overlaps(start, end, b.Start, b.End) {
			return ErrSlotTaken
		}
	}
	return nil
}

func (s *DefaultBookingService) eventDescription(purpose, tz string, adminStart time.Time) string {
	userTime := adminStart.UTC().Format(time.RFC3339)
	if loc, err := time.LoadLocation(tz); err == nil {
		userTime = adminStart.In(loc).Format("Mon, 02 Jan 2006 15:04")
	}
	if purpose != "" {
		return fmt.Sprintf("Purpose: %s\nBooked in timezone: %s\nUser time: %s", purpose, tz, userTime)
	}
	return fmt.Sprintf("Scheduled meeting\nBooked in timezone: %s\nUser time: %s", tz, userTime)
}

// enqueueReminder schedules the reminder email relative to the meeting's
// admin instant. Failures are logged, never surfaced; the booking stands
// without its reminder.
func (s *DefaultBookingService) enqueueReminder(meeting *models.Meeting) {
	if s.Tasks == nil || meeting == nil {
		return
	}
	fireAt := meeting.AdminDateTime.Add(-s.ReminderLead)
	if !fireAt.After(s.now()) {
		return
	}

	task, opts, err := tasks.NewReminderTask(models.ReminderPayload{
		MeetingID: meeting.ID,
		Email:     meeting.Email,
		Name:      meeting.Name,
		DateTime:  meeting.AdminDateTime.UTC().Format(time.RFC3339),
		Duration:  meeting.Duration,
		Timezone:  meeting.Timezone,
		MeetLink:  meeting.MeetLink,
	}, fireAt)
	if err != nil {
		s.Logger.Warn("failed to build reminder task", zap.String("meetingId", meeting.ID), zap.Error(err))
		return
	}
	if _, err := s.Tasks.Enqueue(task, opts...); err != nil {
		s.Logger.Warn("failed to enqueue reminder", zap.String("meetingId", meeting.ID), zap.Error(err))
	}
}

func (s *DefaultBookingService) sendEmail(kind, meetingID string, send func() error) {
	if err := send(); err != nil {
		s.Logger.Warn("async email failed",
			zap.String("kind", kind), zap.String("meetingId", meetingID), zap.Error(err))
	}
}
