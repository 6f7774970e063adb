// File: database/repository/analytics/indexes.go
package analyticsRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes backing the session/IP lookups and the
// period-filtered aggregations on both telemetry collections.
func (r *mongoAnalyticsRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sessionId", Value: 1}},
			Options: options.Index().SetName("session_idx"),
		},
		{
			Keys:    bson.D{{Key: "ip", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("ip_created_idx"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("created_idx"),
		},
	}

	for _, coll := range []string{CollMeetViews, CollResumeViews} {
		if _, err := r.db.Collection(coll).Indexes().CreateMany(ctx, indexModels); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", coll, err)
		}
	}
	return nil
}
