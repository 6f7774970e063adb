// File: services/analytics/tracking.go
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	analyticsRepo "portfolio/database/repository/analytics"
	"portfolio/models"
)

// sessionRecencyWindow bounds the IP fallback used when a tracking call
// arrives without a known session ID.
const sessionRecencyWindow = 5 * time.Minute

// Tracking actions accepted by TrackMeetEvent.
const (
	ActionPageView    = "page_view"
	ActionStep        = "step_completion"
	ActionInteraction = "interaction"
)

// Interaction types for the interaction action.
const (
	InteractionTimeSlotClick  = "time_slot_click"
	InteractionTimezoneChange = "timezone_change"
	InteractionDateChange     = "date_change"
	InteractionDurationChange = "duration_change"
)

// RequestMeta is the per-request client context captured alongside every
// tracking write.
type RequestMeta struct {
	IP        string
	UserAgent string
	Referrer  string
}

// MeetEvent is one tracking signal from the scheduling page.
type MeetEvent struct {
	Action           string `json:"action"`
	SessionID        string `json:"sessionId,omitempty"`
	Step             int    `json:"step,omitempty"`
	Duration         int    `json:"duration,omitempty"`
	InteractionType  string `json:"interactionType,omitempty"`
	MeetingScheduled bool   `json:"meetingScheduled,omitempty"`
	SelectedDuration int    `json:"selectedDuration,omitempty"`
	SelectedTimezone string `json:"selectedTimezone,omitempty"`
}

// TrackResult tells the client which record the event landed on.
type TrackResult struct {
	Success   bool   `json:"success"`
	Action    string `json:"action"`
	ViewID    string `json:"viewId,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
}

// ErrUnknownAction is returned for an unrecognized tracking action or when a
// funnel event arrives with no view record to attach to.
var ErrUnknownAction = fmt.Errorf("invalid action or no matching view found")

// TrackingService records page-view telemetry for the scheduling and resume
// pages.
type TrackingService interface {
	TrackMeetEvent(ctx context.Context, event MeetEvent, meta RequestMeta) (*TrackResult, error)
	RecordResumeClick(ctx context.Context, meta RequestMeta) (string, error)
	MarkResumeDownloaded(ctx context.Context, sessionID string, meta RequestMeta) (bool, error)
	MarkMeetingScheduled(ctx context.Context, sessionID string, meta RequestMeta, duration int, timezone string) error
}

// DefaultTrackingService resolves returning visitors by session ID first and
// by IP recency second, so funnel updates land on the record the page view
// created even when the client lost its session.
type DefaultTrackingService struct {
	Repo   analyticsRepo.AnalyticsRepository
	Geo    GeoResolver
	Logger *zap.Logger

	Now func() time.Time
}

func NewDefaultTrackingService(repo analyticsRepo.AnalyticsRepository, geo GeoResolver, logger *zap.Logger) *DefaultTrackingService {
	return &DefaultTrackingService{Repo: repo, Geo: geo, Logger: logger}
}

func (s *DefaultTrackingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *DefaultTrackingService) TrackMeetEvent(ctx context.Context, event MeetEvent, meta RequestMeta) (*TrackResult, error) {
	switch event.Action {
	case ActionPageView:
		return s.trackPageView(ctx, event, meta)
	case ActionStep:
		return s.trackStep(ctx, event, meta)
	case ActionInteraction:
		return s.trackInteraction(ctx, event, meta)
	default:
		return nil, ErrUnknownAction
	}
}

func (s *DefaultTrackingService) trackPageView(ctx context.Context, event MeetEvent, meta RequestMeta) (*TrackResult, error) {
	existing, err := s.findRecent(ctx, event.SessionID, meta.IP)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if err := s.Repo.TouchMeetView(ctx, existing.ID, event.SessionID, event.Duration); err != nil {
			return nil, err
		}
		return &TrackResult{Success: true, Action: "updated", ViewID: existing.ID, SessionID: existing.SessionID}, nil
	}

	sessionID := event.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	view := &models.MeetView{
		ID:            uuid.NewString(),
		IP:            meta.IP,
		UserAgent:     meta.UserAgent,
		Referrer:      meta.Referrer,
		CreatedAt:     s.now(),
		SessionID:     sessionID,
		ViewDuration:  event.Duration,
		UserAgentInfo: ParseUserAgent(meta.UserAgent),
	}
	if geo := s.resolveGeo(ctx, meta.IP); geo != nil {
		view.GeoInfo = *geo
	}

	if err := s.Repo.InsertMeetView(ctx, view); err != nil {
		return nil, err
	}
	return &TrackResult{Success: true, Action: "created", ViewID: view.ID, SessionID: sessionID}, nil
}

func (s *DefaultTrackingService) trackStep(ctx context.Context, event MeetEvent, meta RequestMeta) (*TrackResult, error) {
	existing, err := s.findRecent(ctx, event.SessionID, meta.IP)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrUnknownAction
	}

	patch := analyticsRepo.StepPatch{Step: event.Step}
	if event.Step == 1 {
		patch.TimeSlotClicks = 1
	}
	if err := s.Repo.ApplyStepPatch(ctx, existing.ID, patch); err != nil {
		return nil, err
	}

	if event.Step == 3 && event.MeetingScheduled {
		if err := s.Repo.MarkMeetingScheduled(ctx, existing.ID, s.now(), event.SelectedDuration, event.SelectedTimezone); err != nil {
			return nil, err
		}
	}

	return &TrackResult{Success: true, Action: "step_updated", ViewID: existing.ID}, nil
}

func (s *DefaultTrackingService) trackInteraction(ctx context.Context, event MeetEvent, meta RequestMeta) (*TrackResult, error) {
	existing, err := s.findRecent(ctx, event.SessionID, meta.IP)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrUnknownAction
	}

	var patch analyticsRepo.StepPatch
	switch event.InteractionType {
	case InteractionTimeSlotClick:
		patch.TimeSlotClicks = 1
	case InteractionTimezoneChange:
		patch.TimezoneChanges = 1
	case InteractionDateChange:
		patch.DateChanges = 1
	case InteractionDurationChange:
		patch.DurationChanges = 1
	default:
		return nil, ErrUnknownAction
	}

	if err := s.Repo.ApplyStepPatch(ctx, existing.ID, patch); err != nil {
		return nil, err
	}
	return &TrackResult{Success: true, Action: "interaction_tracked", ViewID: existing.ID}, nil
}

// MarkMeetingScheduled flags the visitor's funnel record after a booking
// lands. Called from the booking flow, where a missing record is not an
// error.
func (s *DefaultTrackingService) MarkMeetingScheduled(ctx context.Context, sessionID string, meta RequestMeta, duration int, timezone string) error {
	existing, err := s.findRecent(ctx, sessionID, meta.IP)
	if err != nil || existing == nil {
		return err
	}
	return s.Repo.MarkMeetingScheduled(ctx, existing.ID, s.now(), duration, timezone)
}

func (s *DefaultTrackingService) RecordResumeClick(ctx context.Context, meta RequestMeta) (string, error) {
	sessionID := uuid.NewString()
	view := &models.ResumeView{
		ID:            uuid.NewString(),
		IP:            meta.IP,
		UserAgent:     meta.UserAgent,
		Referrer:      meta.Referrer,
		CreatedAt:     s.now(),
		SessionID:     sessionID,
		UserAgentInfo: ParseUserAgent(meta.UserAgent),
	}
	if geo := s.resolveGeo(ctx, meta.IP); geo != nil {
		view.GeoInfo = *geo
	}

	if err := s.Repo.InsertResumeView(ctx, view); err != nil {
		return "", err
	}
	return sessionID, nil
}

func (s *DefaultTrackingService) MarkResumeDownloaded(ctx context.Context, sessionID string, meta RequestMeta) (bool, error) {
	since := s.now().Add(-sessionRecencyWindow)
	return s.Repo.MarkResumeDownloaded(ctx, sessionID, meta.IP, since)
}

func (s *DefaultTrackingService) findRecent(ctx context.Context, sessionID, ip string) (*models.MeetView, error) {
	since := s.now().Add(-sessionRecencyWindow)
	return s.Repo.FindRecentMeetView(ctx, sessionID, ip, since)
}

func (s *DefaultTrackingService) resolveGeo(ctx context.Context, ip string) *models.GeoInfo {
	if s.Geo == nil {
		return nil
	}
	geo, err := s.Geo.Resolve(ctx, ip)
	if err != nil {
		s.Logger.Debug("geolocation unavailable", zap.String("ip", ip), zap.Error(err))
		return nil
	}
	return geo
}
