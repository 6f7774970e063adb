// File: database/repository/analytics/aggregates.go
package analyticsRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"portfolio/models"
)

// Count counts records, optionally bounded by createdAt and boolean flags
// (e.g. meetingScheduled, step1Completed, downloaded).
func (r *mongoAnalyticsRepo) Count(ctx context.Context, coll string, since *time.Time, flags map[string]bool) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := periodFilter(since)
	for field, val := range flags {
		filter[field] = val
	}

	n, err := r.db.Collection(coll).CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", coll, err)
	}
	return n, nil
}

func (r *mongoAnalyticsRepo) UniqueVisitors(ctx context.Context, coll string, since *time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	ips, err := r.db.Collection(coll).Distinct(ctx, "ip", periodFilter(since))
	if err != nil {
		return 0, fmt.Errorf("failed to count unique visitors in %s: %w", coll, err)
	}
	return len(ips), nil
}

// ViewsByDate groups records per calendar day. eventField names the boolean
// whose true-count is surfaced alongside raw views (meetingScheduled for the
// meet funnel, downloaded for resume traffic).
func (r *mongoAnalyticsRepo) ViewsByDate(ctx context.Context, coll string, since *time.Time, eventField string) ([]models.DateBucket, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	group := bson.M{
		"_id":   bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$createdAt"}},
		"views": bson.M{"$sum": 1},
		"events": bson.M{"$sum": bson.M{
			"$cond": bson.A{bson.M{"$eq": bson.A{"$" + eventField, true}}, 1, 0},
		}},
	}
	if coll == CollMeetViews {
		for i, field := range []string{"step1Completed", "step2Completed", "step3Reached"} {
			group[fmt.Sprintf("step%d", i+1)] = bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$" + field, true}}, 1, 0},
			}}
		}
	}

	pipeline := []bson.M{
		{"$match": periodFilter(since)},
		{"$group": group},
		{"$sort": bson.M{"_id": 1}},
	}

	cursor, err := r.db.Collection(coll).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate views by date: %w", err)
	}
	defer cursor.Close(ctx)

	var buckets []models.DateBucket
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("failed to decode date buckets: %w", err)
	}
	return buckets, nil
}

// Breakdown groups records by a single field (country, deviceType, browser,
// referrer) and returns the top values by count.
func (r *mongoAnalyticsRepo) Breakdown(ctx context.Context, coll string, field string, since *time.Time, limit int) ([]models.BreakdownEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if limit <= 0 {
		limit = 10
	}

	match := periodFilter(since)
	match[field] = bson.M{"$nin": bson.A{nil, ""}}

	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{"_id": "$" + field, "count": bson.M{"$sum": 1}}},
		{"$sort": bson.M{"count": -1}},
		{"$limit": limit},
	}

	cursor, err := r.db.Collection(coll).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate %s breakdown: %w", field, err)
	}
	defer cursor.Close(ctx)

	var entries []models.BreakdownEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode breakdown entries: %w", err)
	}
	return entries, nil
}

func periodFilter(since *time.Time) bson.M {
	if since == nil {
		return bson.M{}
	}
	return bson.M{"createdAt": bson.M{"$gte": *since}}
}
