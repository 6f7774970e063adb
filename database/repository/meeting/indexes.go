// File: database/repository/meeting/indexes.go
package meetingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the meetings collection.
func (r *mongoMeetingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Unique index on meeting ID
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Token lookups for the cancel/reschedule endpoints
		{
			Keys:    bson.D{{Key: "rescheduleToken", Value: 1}},
			Options: options.Index().SetName("reschedule_token_idx"),
		},
		{
			Keys:    bson.D{{Key: "cancelToken", Value: 1}},
			Options: options.Index().SetName("cancel_token_idx"),
		},
		// Admin listing filters
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("status_created_idx"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create meeting indexes: %w", err)
	}
	return nil
}
