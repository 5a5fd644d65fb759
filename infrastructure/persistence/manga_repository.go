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

type MangaRepository struct {
	collection *mongo.Collection
}

func NewMangaRepository(db *mongo.Database) repository.IManga {
	return &MangaRepository{collection: db.Collection("manga")}
}

func (r *MangaRepository) GetAll(ctx context.Context) ([]model.Manga, error) {
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

	mangas := []model.Manga{}
	for cursor.Next(ctx) {
		var manga model.Manga
		if err := cursor.Decode(&manga); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while decoding manga")
			continue
		}
		if manga.Versions == nil {
			manga.Versions = []model.MangaVersion{}
		}
		mangas = append(mangas, manga)
	}
	return mangas, cursor.Err()
}

func (r *MangaRepository) GetByID(ctx context.Context, id string) (*model.Manga, error) {
	var manga model.Manga
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&manga)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if manga.Versions == nil {
		manga.Versions = []model.MangaVersion{}
	}
	return &manga, nil
}

func (r *MangaRepository) Create(ctx context.Context, manga model.Manga) error {
	_, err := r.collection.InsertOne(ctx, manga)
	return err
}

func (r *MangaRepository) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": patch})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MangaRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
