package persistence

import (
	"context"

	"twistedbrody/domain/model"
	"twistedbrody/domain/repository"
	"twistedbrody/infrastructure/logger"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type CategoryRepository struct {
	collection *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) repository.ICategory {
	return &CategoryRepository{collection: db.Collection("categories")}
}

func (r *CategoryRepository) GetAll(ctx context.Context) ([]model.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}()

	categories := []model.Category{}
	for cursor.Next(ctx) {
		var category model.Category
		if err := cursor.Decode(&category); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while decoding category")
			continue
		}
		categories = append(categories, category)
	}
	return categories, cursor.Err()
}

func (r *CategoryRepository) Create(ctx context.Context, category model.Category) error {
	_, err := r.collection.InsertOne(ctx, category)
	return err
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
