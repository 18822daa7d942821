package repositories

import (
	"context"

	"github.com/teamkudos/recognition/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReadStateRepository stores per-viewer notification read-markers and
// the last-occasion-check date. One document per viewer.
type ReadStateRepository interface {
	GetReadIDs(ctx context.Context, viewerID string) ([]string, error)
	AddReadID(ctx context.Context, viewerID, notificationID string) error
	SetReadIDs(ctx context.Context, viewerID string, notificationIDs []string) error
	GetLastOccasionCheck(ctx context.Context, viewerID string) (string, error)
	SetLastOccasionCheck(ctx context.Context, viewerID, date string) error
}

// MongoReadStateRepository implements ReadStateRepository for MongoDB
type MongoReadStateRepository struct {
	collection *mongo.Collection
}

// NewMongoReadStateRepository creates a new MongoReadStateRepository
func NewMongoReadStateRepository(db *mongo.Database) *MongoReadStateRepository {
	return &MongoReadStateRepository{collection: db.Collection("notification_read_state")}
}

// GetReadIDs returns the set of notification ids the viewer has read.
// A viewer without a document has read nothing.
func (r *MongoReadStateRepository) GetReadIDs(ctx context.Context, viewerID string) ([]string, error) {
	var state models.NotificationReadState
	err := r.collection.FindOne(ctx, bson.M{"viewer_id": viewerID}).Decode(&state)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return state.ReadIDs, nil
}

// AddReadID records a single notification id as read for the viewer
func (r *MongoReadStateRepository) AddReadID(ctx context.Context, viewerID, notificationID string) error {
	update := bson.M{"$addToSet": bson.M{"read_ids": notificationID}}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"viewer_id": viewerID}, update, opts)
	return err
}

// SetReadIDs overwrites the viewer's read set, used by mark-all-read
func (r *MongoReadStateRepository) SetReadIDs(ctx context.Context, viewerID string, notificationIDs []string) error {
	update := bson.M{"$set": bson.M{"read_ids": notificationIDs}}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"viewer_id": viewerID}, update, opts)
	return err
}

// GetLastOccasionCheck returns the date ("YYYY-MM-DD") of the viewer's
// last opportunistic occasion run, or empty if never run
func (r *MongoReadStateRepository) GetLastOccasionCheck(ctx context.Context, viewerID string) (string, error) {
	var state models.NotificationReadState
	err := r.collection.FindOne(ctx, bson.M{"viewer_id": viewerID}).Decode(&state)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", nil
		}
		return "", err
	}
	return state.LastOccasionCheck, nil
}

// SetLastOccasionCheck records the date of an occasion run
func (r *MongoReadStateRepository) SetLastOccasionCheck(ctx context.Context, viewerID, date string) error {
	update := bson.M{"$set": bson.M{"last_occasion_check": date}}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"viewer_id": viewerID}, update, opts)
	return err
}
