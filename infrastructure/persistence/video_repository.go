package persistence

import (
	"context"
	"errors"

	"twistedbrody/domain/model"
	"twistedbrody/domain/repository"
	"twistedbrody/infrastructure/logger"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// cascadeChunkSize bounds a single bulk write during cascading rewrites.
const cascadeChunkSize = 400

type VideoRepository struct {
	collection *mongo.Collection
}

func NewVideoRepository(db *mongo.Database) repository.IVideo {
	return &VideoRepository{collection: db.Collection("videos")}
}

func (r *VideoRepository) GetAll(ctx context.Context) ([]model.Video, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}()

	videos := []model.Video{}
	for cursor.Next(ctx) {
		var video model.Video
		if err := cursor.Decode(&video); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while decoding video")
			continue
		}
		video.Normalize()
		videos = append(videos, video)
	}
	return videos, cursor.Err()
}

func (r *VideoRepository) GetByID(ctx context.Context, id string) (*model.Video, error) {
	var video model.Video
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&video)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	video.Normalize()
	return &video, nil
}

func (r *VideoRepository) Create(ctx context.Context, video model.Video) error {
	_, err := r.collection.InsertOne(ctx, video)
	return err
}

func (r *VideoRepository) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": patch})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *VideoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *VideoRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}})
	return err
}

// RemoveCategoryFromAll rewrites every video referencing the category, chunked
// into bounded bulk writes. Chunks are best-effort sequential; a failed chunk
// aborts with the documents already rewritten left as they are.
func (r *VideoRepository) RemoveCategoryFromAll(ctx context.Context, categoryID string) (int64, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"categoryIds": categoryID},
		bson.M{"categoryId": categoryID},
	}}
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return 0, err
	}
	var ids []string
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while decoding video id")
			continue
		}
		ids = append(ids, doc.ID)
	}
	if err := cursor.Close(ctx); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
	}
	if cursor.Err() != nil {
		return 0, cursor.Err()
	}

	var rewritten int64
	update := bson.M{
		"$pull":  bson.M{"categoryIds": categoryID},
		"$unset": bson.M{"categoryId": ""},
	}
	for start := 0; start < len(ids); start += cascadeChunkSize {
		end := start + cascadeChunkSize
		if end > len(ids) {
			end = len(ids)
		}
		models := make([]mongo.WriteModel, 0, end-start)
		for _, id := range ids[start:end] {
			models = append(models, mongo.NewUpdateOneModel().
				SetFilter(bson.M{"_id": id}).
				SetUpdate(update))
		}
		res, err := r.collection.BulkWrite(ctx, models)
		if err != nil {
			return rewritten, err
		}
		rewritten += res.ModifiedCount
	}
	return rewritten, nil
}
