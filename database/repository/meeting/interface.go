// File: database/repository/meeting/interface.go
package meetingRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"portfolio/models"
)

// Token kinds accepted by GetByToken.
const (
	TokenReschedule = "reschedule"
	TokenCancel     = "cancel"
)

// MeetingRepository is the storage collaborator for persisted bookings.
type MeetingRepository interface {
	Create(ctx context.Context, m *models.Meeting) error
	GetByID(ctx context.Context, id string) (*models.Meeting, error)
	GetByToken(ctx context.Context, kind, token string) (*models.Meeting, error)
	Update(ctx context.Context, id string, patch MeetingPatch) (*models.Meeting, error)
	SetMetadata(ctx context.Context, id string, metadata map[string]string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter models.MeetingFilter) ([]models.Meeting, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoMeetingRepo struct {
	coll *mongo.Collection
}

// NewMongoMeetingRepo constructs a MeetingRepository over the given client.
func NewMongoMeetingRepo(client *mongo.Client, dbName string) MeetingRepository {
	return &mongoMeetingRepo{
		coll: client.Database(dbName).Collection("meetings"),
	}
}
