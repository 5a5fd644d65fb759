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

type GalleryRepository struct {
	collection *mongo.Collection
}

func NewGalleryRepository(db *mongo.Database) repository.IGallery {
	return &GalleryRepository{collection: db.Collection("galleries")}
}

func (r *GalleryRepository) GetAll(ctx context.Context) ([]model.Gallery, error) {
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

	galleries := []model.Gallery{}
	for cursor.Next(ctx) {
		var gallery model.Gallery
		if err := cursor.Decode(&gallery); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while decoding gallery")
			continue
		}
		if gallery.Images == nil {
			gallery.Images = []string{}
		}
		galleries = append(galleries, gallery)
	}
	return galleries, cursor.Err()
}

func (r *GalleryRepository) GetByID(ctx context.Context, id string) (*model.Gallery, error) {
	var gallery model.Gallery
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&gallery)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if gallery.Images == nil {
		gallery.Images = []string{}
	}
	return &gallery, nil
}

func (r *GalleryRepository) Create(ctx context.Context, gallery model.Gallery) error {
	_, err := r.collection.InsertOne(ctx, gallery)
	return err
}

func (r *GalleryRepository) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": patch})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *GalleryRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
