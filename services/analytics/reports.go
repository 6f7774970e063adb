// File: services/analytics/reports.go
package analytics

import (
	"context"
	"time"

	"go.uber.org/zap"

	analyticsRepo "portfolio/database/repository/analytics"
	"portfolio/models"
)

const breakdownLimit = 10

// ReportService builds the admin dashboard payloads.
type ReportService interface {
	MeetReport(ctx context.Context, period string) (*models.MeetAnalyticsReport, error)
	ResumeReport(ctx context.Context, period string) (*models.ResumeAnalyticsReport, error)
}

// DefaultReportService aggregates telemetry collections per period. Periods
// are 7d, 15d, 30d or all; anything else falls back to 30d.
type DefaultReportService struct {
	Repo   analyticsRepo.AnalyticsRepository
	Logger *zap.Logger

	Now func() time.Time
}

func NewDefaultReportService(repo analyticsRepo.AnalyticsRepository, logger *zap.Logger) *DefaultReportService {
	return &DefaultReportService{Repo: repo, Logger: logger}
}

func (s *DefaultReportService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// periodStart maps a period name to its lower createdAt bound. Nil means no
// bound (the "all" period).
func (s *DefaultReportService) periodStart(period string) (string, *time.Time) {
	daysBack := 30
	switch period {
	case "all":
		return "all", nil
	case "7d":
		daysBack = 7
	case "15d":
		daysBack = 15
	case "30d":
		daysBack = 30
	default:
		period = "30d"
	}
	since := s.now().AddDate(0, 0, -daysBack)
	return period, &since
}

func (s *DefaultReportService) MeetReport(ctx context.Context, period string) (*models.MeetAnalyticsReport, error) {
	period, since := s.periodStart(period)
	coll := analyticsRepo.CollMeetViews

	report := &models.MeetAnalyticsReport{Period: period}

	var err error
	if report.TotalViews, err = s.Repo.Count(ctx, coll, since, nil); err != nil {
		return nil, err
	}
	if report.MeetingsScheduled, err = s.Repo.Count(ctx, coll, since, map[string]bool{"meetingScheduled": true}); err != nil {
		return nil, err
	}
	if report.UniqueVisitors, err = s.Repo.UniqueVisitors(ctx, coll, since); err != nil {
		return nil, err
	}
	if report.Step1Completions, err = s.Repo.Count(ctx, coll, since, map[string]bool{"step1Completed": true}); err != nil {
		return nil, err
	}
	if report.Step2Completions, err = s.Repo.Count(ctx, coll, since, map[string]bool{"step2Completed": true}); err != nil {
		return nil, err
	}
	if report.Step3Reached, err = s.Repo.Count(ctx, coll, since, map[string]bool{"step3Reached": true}); err != nil {
		return nil, err
	}

	// Fixed-window counters ignore the requested period.
	now := s.now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)
	if report.TodayViews, err = s.Repo.Count(ctx, coll, &startOfToday, nil); err != nil {
		return nil, err
	}
	if report.WeekViews, err = s.Repo.Count(ctx, coll, &weekAgo, nil); err != nil {
		return nil, err
	}
	if report.MonthViews, err = s.Repo.Count(ctx, coll, &monthAgo, nil); err != nil {
		return nil, err
	}

	if report.ViewsByDate, err = s.Repo.ViewsByDate(ctx, coll, since, "meetingScheduled"); err != nil {
		return nil, err
	}
	if report.Countries, err = s.Repo.Breakdown(ctx, coll, "country", since, breakdownLimit); err != nil {
		return nil, err
	}
	if report.Devices, err = s.Repo.Breakdown(ctx, coll, "deviceType", since, breakdownLimit); err != nil {
		return nil, err
	}
	if report.Browsers, err = s.Repo.Breakdown(ctx, coll, "browser", since, breakdownLimit); err != nil {
		return nil, err
	}
	if report.Referrers, err = s.Repo.Breakdown(ctx, coll, "referrer", since, breakdownLimit); err != nil {
		return nil, err
	}

	s.Logger.Debug("meet analytics built",
		zap.String("period", period),
		zap.Int64("totalViews", report.TotalViews),
		zap.Int64("scheduled", report.MeetingsScheduled))
	return report, nil
}

func (s *DefaultReportService) ResumeReport(ctx context.Context, period string) (*models.ResumeAnalyticsReport, error) {
	period, since := s.periodStart(period)
	coll := analyticsRepo.CollResumeViews

	report := &models.ResumeAnalyticsReport{Period: period}

	var err error
	if report.TotalViews, err = s.Repo.Count(ctx, coll, since, nil); err != nil {
		return nil, err
	}
	if report.TotalDownloads, err = s.Repo.Count(ctx, coll, since, map[string]bool{"downloaded": true}); err != nil {
		return nil, err
	}
	if report.UniqueVisitors, err = s.Repo.UniqueVisitors(ctx, coll, since); err != nil {
		return nil, err
	}
	if report.ViewsByDate, err = s.Repo.ViewsByDate(ctx, coll, since, "downloaded"); err != nil {
		return nil, err
	}
	if report.Countries, err = s.Repo.Breakdown(ctx, coll, "country", since, breakdownLimit); err != nil {
		return nil, err
	}
	if report.Devices, err = s.Repo.Breakdown(ctx, coll, "deviceType", since, breakdownLimit); err != nil {
		return nil, err
	}
	if report.Browsers, err = s.Repo.Breakdown(ctx, coll, "browser", since, breakdownLimit); err != nil {
		return nil, err
	}
	if report.Referrers, err = s.Repo.Breakdown(ctx, coll, "referrer", since, breakdownLimit); err != nil {
		return nil, err
	}

	return report, nil
}
