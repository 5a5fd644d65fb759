package persistence

import (
	"context"
	"time"

	"twistedbrody/domain/model"
	"twistedbrody/domain/repository"
	"twistedbrody/infrastructure/logger"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type HistoryRepository struct {
	collection *mongo.Collection
}

func NewHistoryRepository(db *mongo.Database) repository.IHistory {
	return &HistoryRepository{collection: db.Collection("history")}
}

func (r *HistoryRepository) List(ctx context.Context, limit int) ([]model.HistoryEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "viewedAt", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}()

	entries := []model.HistoryEntry{}
	for cursor.Next(ctx) {
		var entry model.HistoryEntry
		if err := cursor.Decode(&entry); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while decoding history entry")
			continue
		}
		entries = append(entries, entry)
	}
	return entries, cursor.Err()
}

// Record upserts the entry keyed by video id, so a re-watch moves the entry
// forward instead of duplicating it.
func (r *HistoryRepository) Record(ctx context.Context, videoID string, viewedAt time.Time) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": videoID},
		bson.M{"$set": bson.M{"viewedAt": viewedAt}},
		options.UpdateOne().SetUpsert(true))
	return err
}

func (r *HistoryRepository) Delete(ctx context.Context, videoID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": videoID})
	return err
}
