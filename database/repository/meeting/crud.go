// File: database/repository/meeting/crud.go
package meetingRepo

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

// MeetingPatch is a partial update; zero/nil fields are left untouched.
// Update always stamps updatedAt.
type MeetingPatch struct {
	Status        string
	DateTime      *time.Time
	AdminDateTime *time.Time
	CanceledAt    *time.Time
}

func (r *mongoMeetingRepo) Create(ctx context.Context, m *models.Meeting) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("failed to insert meeting: %w", err)
	}
	return nil
}

func (r *mongoMeetingRepo) GetByID(ctx context.Context, id string) (*models.Meeting, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var m models.Meeting
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch meeting %s: %w", id, err)
	}
	return &m, nil
}

func (r *mongoMeetingRepo) GetByToken(ctx context.Context, kind, token string) (*models.Meeting, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	field := "cancelToken"
	if kind == TokenReschedule {
		field = "rescheduleToken"
	}

	var m models.Meeting
	err := r.coll.FindOne(ctx, bson.M{field: token}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch meeting by %s token: %w", kind, err)
	}
	return &m, nil
}

func (r *mongoMeetingRepo) Update(ctx context.Context, id string, patch MeetingPatch) (*models.Meeting, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Status != "" {
		set["status"] = patch.Status
	}
	if patch.DateTime != nil {
		set["dateTime"] = *patch.DateTime
	}
	if patch.AdminDateTime != nil {
		set["adminDateTime"] = *patch.AdminDateTime
	}
	if patch.CanceledAt != nil {
		set["canceledAt"] = *patch.CanceledAt
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var m models.Meeting
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update meeting %s: %w", id, err)
	}
	return &m, nil
}

// SetMetadata attaches request audit data as a separate write, mirroring the
// creation flow where the record exists before its metadata.
func (r *mongoMeetingRepo) SetMetadata(ctx context.Context, id string, metadata map[string]string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"metadata": metadata}})
	if err != nil {
		return fmt.Errorf("failed to set meeting metadata: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoMeetingRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete meeting %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoMeetingRepo) List(ctx context.Context, filter models.MeetingFilter) ([]models.Meeting, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Email != "" {
		query["email"] = filter.Email
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	defer cursor.Close(ctx)

	var meetings []models.Meeting
	if err := cursor.All(ctx, &meetings); err != nil {
		return nil, fmt.Errorf("failed to decode meetings: %w", err)
	}
	return meetings, nil
}
