package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"portfolio/models"
)

type recordingMailer struct {
	to      string
	subject string
	body    string
	err     error
}

func (m *recordingMailer) Send(to, subject, body string) error {
	m.to, m.subject, m.body = to, subject, body
	return m.err
}

func testData() MeetingEmailData {
	return MeetingEmailData{
		Name:           "Jordan",
		DateTime:       time.Date(2026, 3, 14, 14, 30, 0, 0, time.UTC),
		Duration:       30,
		Timezone:       "Asia/Kolkata",
		Purpose:        "Portfolio review",
		MeetLink:       "https://meet.google.com/abc-defg-hij",
		CalendarLink:   "https://calendar.google.com/calendar/event?eid=ev123",
		RescheduleLink: "https://example.com/reschedule/tok1",
		CancelLink:     "https://example.com/cancel/tok2",
	}
}

func TestBuildMessage(t *testing.T) {
	msg := buildMessage("me@site.dev", "you@example.com", "Hello", "Body text")
	assert.Contains(t, msg, "From: me@site.dev\r\n")
	assert.Contains(t, msg, "To: you@example.com\r\n")
	assert.Contains(t, msg, "Subject: Hello\r\n")
	assert.Contains(t, msg, "\r\n\r\nBody text\r\n")
}

func TestSendConfirmation(t *testing.T) {
	mailer := &recordingMailer{}
	svc := NewDefaultEmailService(mailer, "Asha", "asha@site.dev", zap.NewNop())

	err := svc.SendConfirmation("jordan@example.com", testData())
	require.NoError(t, err)

	assert.Equal(t, "jordan@example.com", mailer.to)
	assert.Equal(t, "Meeting confirmed with Asha", mailer.subject)
	// 14:30 UTC reads as 20:00 in Asia/Kolkata.
	assert.Contains(t, mailer.body, "Saturday, 14 Mar 2026 at 8:00 PM (Asia/Kolkata)")
	assert.Contains(t, mailer.body, "Duration: 30 minutes")
	assert.Contains(t, mailer.body, "Purpose: Portfolio review")
	assert.Contains(t, mailer.body, "https://meet.google.com/abc-defg-hij")
	assert.Contains(t, mailer.body, "https://example.com/reschedule/tok1")
	assert.Contains(t, mailer.body, "https://example.com/cancel/tok2")
}

func TestSendCancellationOmitsLinks(t *testing.T) {
	mailer := &recordingMailer{}
	svc := NewDefaultEmailService(mailer, "Asha", "asha@site.dev", zap.NewNop())

	err := svc.SendCancellation("jordan@example.com", testData())
	require.NoError(t, err)

	assert.Equal(t, "Meeting with Asha canceled", mailer.subject)
	assert.NotContains(t, mailer.body, "reschedule")
	assert.Contains(t, mailer.body, "has been canceled")
}

func TestSendContactMessageGoesToOwner(t *testing.T) {
	mailer := &recordingMailer{}
	svc := NewDefaultEmailService(mailer, "Asha", "asha@site.dev", zap.NewNop())

	err := svc.SendContactMessage(models.ContactMessage{
		Name:    "Sam",
		Email:   "sam@example.com",
		Message: "Loved the day-code project.",
	})
	require.NoError(t, err)

	assert.Equal(t, "asha@site.dev", mailer.to)
	assert.Equal(t, "New contact message from Sam", mailer.subject)
	assert.Contains(t, mailer.body, "sam@example.com")
	assert.Contains(t, mailer.body, "Loved the day-code project.")
}
