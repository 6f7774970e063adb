// File: services/notification/emails.go
package notification

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"portfolio/models"
)

// displayLayout renders an instant the way it reads in an inbox,
// e.g. "Saturday, 14 Mar 2026 at 10:00 AM".
const displayLayout = "Monday, 02 Jan 2006 at 3:04 PM"

// MeetingEmailData carries everything a meeting email renders. DateTime is
// the meeting instant; Timezone names the zone it is rendered in.
type MeetingEmailData struct {
	Name           string
	DateTime       time.Time
	Duration       int
	Timezone       string
	Purpose        string
	MeetLink       string
	CalendarLink   string
	RescheduleLink string
	CancelLink     string
}

// Service sends the transactional emails around a meeting's lifecycle plus
// the contact-form relay to the site owner.
type Service interface {
	SendConfirmation(to string, data MeetingEmailData) error
	SendReschedule(to string, data MeetingEmailData) error
	SendCancellation(to string, data MeetingEmailData) error
	SendReminder(to string, data MeetingEmailData) error
	SendContactMessage(msg models.ContactMessage) error
}

// DefaultEmailService composes plain-text emails and hands them to a Mailer.
type DefaultEmailService struct {
	Mailer     Mailer
	OwnerName  string
	OwnerEmail string
	Logger     *zap.Logger
}

func NewDefaultEmailService(mailer Mailer, ownerName, ownerEmail string, logger *zap.Logger) *DefaultEmailService {
	return &DefaultEmailService{
		Mailer:     mailer,
		OwnerName:  ownerName,
		OwnerEmail: ownerEmail,
		Logger:     logger,
	}
}

func (s *DefaultEmailService) SendConfirmation(to string, data MeetingEmailData) error {
	subject := fmt.Sprintf("Meeting confirmed with %s", s.OwnerName)
	body := s.meetingBody(data,
		fmt.Sprintf("Hi %s,", data.Name),
		fmt.Sprintf("Your meeting with %s is confirmed.", s.OwnerName),
	)
	return s.send(to, subject, body, "confirmation")
}

func (s *DefaultEmailService) SendReschedule(to string, data MeetingEmailData) error {
	subject := fmt.Sprintf("Meeting with %s rescheduled", s.OwnerName)
	body := s.meetingBody(data,
		fmt.Sprintf("Hi %s,", data.Name),
		"Your meeting has been moved to a new time.",
	)
	return s.send(to, subject, body, "reschedule")
}

func (s *DefaultEmailService) SendCancellation(to string, data MeetingEmailData) error {
	subject := fmt.Sprintf("Meeting with %s canceled", s.OwnerName)
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", data.Name)
	fmt.Fprintf(&b, "Your meeting scheduled for %s (%d minutes) has been canceled.\n\n",
		renderWhen(data.DateTime, data.Timezone), data.Duration)
	b.WriteString("Feel free to book another time whenever suits you.\n")
	return s.send(to, subject, b.String(), "cancellation")
}

func (s *DefaultEmailService) SendReminder(to string, data MeetingEmailData) error {
	subject := fmt.Sprintf("Reminder: meeting with %s soon", s.OwnerName)
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", data.Name)
	fmt.Fprintf(&b, "A reminder that your meeting starts at %s (%d minutes).\n\n",
		renderWhen(data.DateTime, data.Timezone), data.Duration)
	if data.MeetLink != "" {
		fmt.Fprintf(&b, "Join: %s\n", data.MeetLink)
	}
	return s.send(to, subject, b.String(), "reminder")
}

func (s *DefaultEmailService) SendContactMessage(msg models.ContactMessage) error {
	subject := fmt.Sprintf("New contact message from %s", msg.Name)
	if msg.Subject != "" {
		subject = fmt.Sprintf("%s (from %s)", msg.Subject, msg.Name)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\n\n", msg.Name, msg.Email)
	b.WriteString(msg.Message)
	b.WriteString("\n")
	return s.send(s.OwnerEmail, subject, b.String(), "contact")
}

func (s *DefaultEmailService) meetingBody(data MeetingEmailData, lines ...string) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "When: %s\n", renderWhen(data.DateTime, data.Timezone))
	fmt.Fprintf(&b, "Duration: %d minutes\n", data.Duration)
	if data.Purpose != "" {
		fmt.Fprintf(&b, "Purpose: %s\n", data.Purpose)
	}
	if data.MeetLink != "" {
		fmt.Fprintf(&b, "Join: %s\n", data.MeetLink)
	}
	if data.CalendarLink != "" {
		fmt.Fprintf(&b, "Calendar: %s\n", data.CalendarLink)
	}
	b.WriteString("\n")
	if data.RescheduleLink != "" {
		fmt.Fprintf(&b, "Need a different time? %s\n", data.RescheduleLink)
	}
	if data.CancelLink != "" {
		fmt.Fprintf(&b, "Can't make it? %s\n", data.CancelLink)
	}
	return b.String()
}

func (s *DefaultEmailService) send(to, subject, body, kind string) error {
	if err := s.Mailer.Send(to, subject, body); err != nil {
		s.Logger.Error("email delivery failed",
			zap.String("kind", kind), zap.String("to", to), zap.Error(err))
		return err
	}
	s.Logger.Info("email sent", zap.String("kind", kind), zap.String("to", to))
	return nil
}

func renderWhen(t time.Time, tz string) string {
	loc, err := time.LoadLocation(tz)
	if err != nil || tz == "" {
		loc = time.UTC
	}
	local := t.In(loc)
	if tz != "" {
		return fmt.Sprintf("%s (%s)", local.Format(displayLayout), tz)
	}
	return local.Format(displayLayout)
}
