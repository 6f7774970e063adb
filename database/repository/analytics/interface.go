// File: database/repository/analytics/interface.go
package analyticsRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"portfolio/models"
)

// Collection selectors for the aggregate queries shared by both dashboards.
const (
	CollMeetViews   = "meet_views"
	CollResumeViews = "resume_views"
)

// StepPatch updates funnel flags and interaction counters on a meet view.
// Counter values are $inc deltas; nil step leaves the flags untouched.
type StepPatch struct {
	Step            int
	TimeSlotClicks  int
	TimezoneChanges int
	DateChanges     int
	DurationChanges int
}

// AnalyticsRepository is the storage collaborator for telemetry records.
type AnalyticsRepository interface {
	InsertMeetView(ctx context.Context, v *models.MeetView) error
	// FindRecentMeetView resolves the record for a returning visitor: by
	// session ID first, then by IP within the recency window.
	FindRecentMeetView(ctx context.Context, sessionID, ip string, since time.Time) (*models.MeetView, error)
	TouchMeetView(ctx context.Context, id, sessionID string, viewDuration int) error
	ApplyStepPatch(ctx context.Context, id string, patch StepPatch) error
	MarkMeetingScheduled(ctx context.Context, id string, at time.Time, duration int, timezone string) error

	InsertResumeView(ctx context.Context, v *models.ResumeView) error
	// MarkResumeDownloaded flags the visitor's view record; falls back to the
	// most recent record for the IP when the session is unknown.
	MarkResumeDownloaded(ctx context.Context, sessionID, ip string, since time.Time) (bool, error)

	Count(ctx context.Context, coll string, since *time.Time, flags map[string]bool) (int64, error)
	UniqueVisitors(ctx context.Context, coll string, since *time.Time) (int, error)
	ViewsByDate(ctx context.Context, coll string, since *time.Time, eventField string) ([]models.DateBucket, error)
	Breakdown(ctx context.Context, coll string, field string, since *time.Time, limit int) ([]models.BreakdownEntry, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoAnalyticsRepo struct {
	db *mongo.Database
}

// NewMongoAnalyticsRepo constructs an AnalyticsRepository over the given client.
func NewMongoAnalyticsRepo(client *mongo.Client, dbName string) AnalyticsRepository {
	return &mongoAnalyticsRepo{db: client.Database(dbName)}
}
