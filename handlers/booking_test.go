package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"portfolio/models"
	"portfolio/services/analytics"
	"portfolio/services/booking"
	"portfolio/services/scheduling"
)

type stubBookingService struct {
	bookResp *models.BookMeetingResponse
	bookErr  error
	bookMeta booking.BookingMeta

	cancelErr error
	deleteErr error
	deleteTok string

	meetings []models.Meeting
}

func (s *stubBookingService) Book(_ context.Context, _ models.BookMeetingRequest, meta booking.BookingMeta) (*models.BookMeetingResponse, error) {
	s.bookMeta = meta
	return s.bookResp, s.bookErr
}

func (s *stubBookingService) Cancel(context.Context, string, string) error {
	return s.cancelErr
}

func (s *stubBookingService) Reschedule(context.Context, models.RescheduleMeetingRequest) (*models.RescheduleMeetingResponse, error) {
	return &models.RescheduleMeetingResponse{Success: true}, nil
}

func (s *stubBookingService) ListMeetings(context.Context, models.MeetingFilter) ([]models.Meeting, error) {
	return s.meetings, nil
}

func (s *stubBookingService) GetMeeting(context.Context, string) (*models.Meeting, error) {
	return nil, booking.ErrMeetingNotFound
}

func (s *stubBookingService) DeleteMeeting(_ context.Context, _ string, token string) error {
	s.deleteTok = token
	return s.deleteErr
}

type stubTracking struct {
	marked    bool
	sessionID string
	meta      analytics.RequestMeta
}

func (s *stubTracking) TrackMeetEvent(context.Context, analytics.MeetEvent, analytics.RequestMeta) (*analytics.TrackResult, error) {
	return &analytics.TrackResult{Success: true}, nil
}

func (s *stubTracking) RecordResumeClick(context.Context, analytics.RequestMeta) (string, error) {
	return "", nil
}

func (s *stubTracking) MarkResumeDownloaded(context.Context, string, analytics.RequestMeta) (bool, error) {
	return false, nil
}

func (s *stubTracking) MarkMeetingScheduled(_ context.Context, sessionID string, meta analytics.RequestMeta, _ int, _ string) error {
	s.marked = true
	s.sessionID = sessionID
	s.meta = meta
	return nil
}

type stubAvailability struct {
	resp *scheduling.AvailabilityResponse
	err  error
}

func (s *stubAvailability) AvailableSlots(context.Context, scheduling.AvailabilityRequest) (*scheduling.AvailabilityResponse, error) {
	return s.resp, s.err
}

func testRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/available-slots", h.GetAvailableSlots)
	r.POST("/api/book-meeting", h.BookMeeting)
	r.DELETE("/api/cancel-meeting", h.CancelMeeting)
	r.PATCH("/api/reschedule-meeting", h.RescheduleMeeting)
	r.GET("/api/meetings", h.ListMeetings)
	r.GET("/api/meetings/:id", h.GetMeeting)
	r.DELETE("/api/meetings/:id", h.DeleteMeeting)
	return r
}

func TestGetAvailableSlots(t *testing.T) {
	t.Run("returns slot payload", func(t *testing.T) {
		h := &Handler{
			Availability: &stubAvailability{resp: &scheduling.AvailabilityResponse{
				Date:     "2026-03-14",
				Duration: 30,
				Timezone: "Asia/Kolkata",
			}},
			Logger: zap.NewNop(),
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/available-slots?date=2026-03-14&duration=30", nil)
		testRouter(h).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body scheduling.AvailabilityResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "2026-03-14", body.Date)
	})

	t.Run("missing date is a 400", func(t *testing.T) {
		h := &Handler{Availability: &stubAvailability{}, Logger: zap.NewNop()}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/available-slots", nil)
		testRouter(h).ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("calendar outage is a 503", func(t *testing.T) {
		h := &Handler{
			Availability: &stubAvailability{err: scheduling.ErrCalendarUnavailable},
			Logger:       zap.NewNop(),
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/available-slots?date=2026-03-14", nil)
		testRouter(h).ServeHTTP(w, req)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestBookMeetingHandler(t *testing.T) {
	payload := `{"name":"Jordan","email":"jordan@example.com","dateTime":"2026-03-14T20:00:00+05:30","duration":30}`

	t.Run("success passes client metadata through", func(t *testing.T) {
		stub := &stubBookingService{bookResp: &models.BookMeetingResponse{Success: true, MeetingID: "m1"}}
		tracking := &stubTracking{}
		h := &Handler{Booking: stub, Tracking: tracking, Logger: zap.NewNop()}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/book-meeting", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", "203.0.113.7")
		req.Header.Set("User-Agent", "test-agent")
		testRouter(h).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "203.0.113.7", stub.bookMeta.IP)
		assert.Equal(t, "test-agent", stub.bookMeta.UserAgent)
	})

	t.Run("success marks the visitor funnel record", func(t *testing.T) {
		stub := &stubBookingService{bookResp: &models.BookMeetingResponse{Success: true, MeetingID: "m1", Timezone: "Asia/Kolkata"}}
		tracking := &stubTracking{}
		h := &Handler{Booking: stub, Tracking: tracking, Logger: zap.NewNop()}

		withSession := `{"name":"Jordan","email":"jordan@example.com","dateTime":"2026-03-14T20:00:00+05:30","duration":30,"sessionId":"sess-1"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/book-meeting", strings.NewReader(withSession))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", "203.0.113.7")
		testRouter(h).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, tracking.marked)
		assert.Equal(t, "sess-1", tracking.sessionID)
		assert.Equal(t, "203.0.113.7", tracking.meta.IP)
	})

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation error maps to 400", &booking.ValidationError{Field: "duration", Message: "bad"}, http.StatusBadRequest},
		{"taken slot maps to 409", booking.ErrSlotTaken, http.StatusConflict},
		{"partial failure maps to 500", &booking.PartialFailureError{EventID: "ev1", Compensated: true}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{Booking: &stubBookingService{bookErr: tt.err}, Logger: zap.NewNop()}

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/book-meeting", strings.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			testRouter(h).ServeHTTP(w, req)
			assert.Equal(t, tt.expected, w.Code)
		})
	}
}

func TestCancelMeetingHandler(t *testing.T) {
	t.Run("bad token maps to 403", func(t *testing.T) {
		h := &Handler{Booking: &stubBookingService{cancelErr: booking.ErrInvalidToken}, Logger: zap.NewNop()}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/cancel-meeting?meetingId=m1&token=bad", nil)
		testRouter(h).ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing id maps to 400", func(t *testing.T) {
		h := &Handler{Booking: &stubBookingService{}, Logger: zap.NewNop()}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/cancel-meeting?token=tok", nil)
		testRouter(h).ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRescheduleMeetingHandler(t *testing.T) {
	h := &Handler{Booking: &stubBookingService{}, Logger: zap.NewNop()}

	payload := `{"meetingId":"m1","token":"tok","newDateTime":"2026-03-15T21:00:00+05:30"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/reschedule-meeting", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	testRouter(h).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"success\":true")
}

func TestDeleteMeetingHandler(t *testing.T) {
	t.Run("missing token is a 403 before any lookup", func(t *testing.T) {
		stub := &stubBookingService{}
		h := &Handler{Booking: stub, Logger: zap.NewNop()}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/meetings/m1", nil)
		testRouter(h).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Cancellation token is required")
		assert.Empty(t, stub.deleteTok)
	})

	t.Run("wrong token is a 403", func(t *testing.T) {
		h := &Handler{Booking: &stubBookingService{deleteErr: booking.ErrInvalidToken}, Logger: zap.NewNop()}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/meetings/m1?token=guess", nil)
		testRouter(h).ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("valid token deletes", func(t *testing.T) {
		stub := &stubBookingService{}
		h := &Handler{Booking: stub, Logger: zap.NewNop()}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/meetings/m1?token=canceltoken", nil)
		testRouter(h).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "canceltoken", stub.deleteTok)
	})
}

func TestMeetingResponsesOmitTokens(t *testing.T) {
	start := time.Date(2026, 3, 14, 14, 30, 0, 0, time.UTC)
	h := &Handler{
		Booking: &stubBookingService{meetings: []models.Meeting{{
			ID:              "m1",
			Name:            "Jordan",
			DateTime:        start,
			AdminDateTime:   start,
			RescheduleToken: "secret-r",
			CancelToken:     "secret-c",
			Status:          models.StatusConfirmed,
		}}},
		Logger: zap.NewNop(),
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/meetings", nil)
	testRouter(h).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "secret-r")
	assert.NotContains(t, w.Body.String(), "secret-c")
	assert.Contains(t, w.Body.String(), "\"id\":\"m1\"")
}

func TestGetMeetingNotFound(t *testing.T) {
	h := &Handler{Booking: &stubBookingService{}, Logger: zap.NewNop()}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/meetings/nope", nil)
	testRouter(h).ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
