// File: database/repository/analytics/crud.go
package analyticsRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"portfolio/models"
)

func (r *mongoAnalyticsRepo) InsertMeetView(ctx context.Context, v *models.MeetView) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.db.Collection(CollMeetViews).InsertOne(ctx, v); err != nil {
		return fmt.Errorf("failed to insert meet view: %w", err)
	}
	return nil
}

func (r *mongoAnalyticsRepo) FindRecentMeetView(ctx context.Context, sessionID, ip string, since time.Time) (*models.MeetView, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	coll := r.db.Collection(CollMeetViews)
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	if sessionID != "" {
		var v models.MeetView
		err := coll.FindOne(ctx, bson.M{"sessionId": sessionID}, opts).Decode(&v)
		if err == nil {
			return &v, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("failed to find meet view by session: %w", err)
		}
	}

	var v models.MeetView
	err := coll.FindOne(ctx, bson.M{"ip": ip, "createdAt": bson.M{"$gte": since}}, opts).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find recent meet view: %w", err)
	}
	return &v, nil
}

func (r *mongoAnalyticsRepo) TouchMeetView(ctx context.Context, id, sessionID string, viewDuration int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{}
	if sessionID != "" {
		set["sessionId"] = sessionID
	}
	if viewDuration > 0 {
		set["viewDuration"] = viewDuration
	}
	if len(set) == 0 {
		return nil
	}

	_, err := r.db.Collection(CollMeetViews).UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to touch meet view: %w", err)
	}
	return nil
}

func (r *mongoAnalyticsRepo) ApplyStepPatch(ctx context.Context, id string, patch StepPatch) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{}

	switch patch.Step {
	case 1:
		update["$set"] = bson.M{"step1Completed": true}
	case 2:
		update["$set"] = bson.M{"step2Completed": true}
	case 3:
		update["$set"] = bson.M{"step3Reached": true}
	}

	inc := bson.M{}
	if patch.TimeSlotClicks > 0 {
		inc["timeSlotClicks"] = patch.TimeSlotClicks
	}
	if patch.TimezoneChanges > 0 {
		inc["timezoneChanges"] = patch.TimezoneChanges
	}
	if patch.DateChanges > 0 {
		inc["dateChanges"] = patch.DateChanges
	}
	if patch.DurationChanges > 0 {
		inc["durationChanges"] = patch.DurationChanges
	}
	if len(inc) > 0 {
		update["$inc"] = inc
	}
	if len(update) == 0 {
		return nil
	}

	_, err := r.db.Collection(CollMeetViews).UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to apply step patch: %w", err)
	}
	return nil
}

func (r *mongoAnalyticsRepo) MarkMeetingScheduled(ctx context.Context, id string, at time.Time, duration int, timezone string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{
		"meetingScheduled": true,
		"scheduledAt":      at,
	}
	if duration > 0 {
		set["selectedDuration"] = duration
	}
	if timezone != "" {
		set["selectedTimezone"] = timezone
	}

	_, err := r.db.Collection(CollMeetViews).UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to mark meeting scheduled: %w", err)
	}
	return nil
}

func (r *mongoAnalyticsRepo) InsertResumeView(ctx context.Context, v *models.ResumeView) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.db.Collection(CollResumeViews).InsertOne(ctx, v); err != nil {
		return fmt.Errorf("failed to insert resume view: %w", err)
	}
	return nil
}

func (r *mongoAnalyticsRepo) MarkResumeDownloaded(ctx context.Context, sessionID, ip string, since time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	coll := r.db.Collection(CollResumeViews)
	now := time.Now().UTC()
	update := bson.M{"$set": bson.M{"downloaded": true, "downloadedAt": now}}

	if sessionID != "" {
		res, err := coll.UpdateOne(ctx, bson.M{"sessionId": sessionID}, update)
		if err != nil {
			return false, fmt.Errorf("failed to mark resume downloaded: %w", err)
		}
		if res.MatchedCount > 0 {
			return true, nil
		}
	}

	// Session unknown or stale: fall back to the most recent view for the IP.
	opts := options.FindOneAndUpdate().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	err := coll.FindOneAndUpdate(ctx, bson.M{"ip": ip, "createdAt": bson.M{"$gte": since}}, update, opts).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to mark resume downloaded by ip: %w", err)
	}
	return true, nil
}
