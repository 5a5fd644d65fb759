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

type UserDataRepository struct {
	collection *mongo.Collection
	persons    *mongo.Collection
}

func NewUserDataRepository(db *mongo.Database) repository.IUserData {
	return &UserDataRepository{
		collection: db.Collection("userData"),
		persons:    db.Collection("personMaps"),
	}
}

func (r *UserDataRepository) Get(ctx context.Context, userID string) (*model.UserData, error) {
	var data model.UserData
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&data)
	if errors.Is(err, mongo.ErrNoDocuments) {
		data = model.UserData{UserID: userID}
		data.Normalize()
		return &data, nil
	}
	if err != nil {
		return nil, err
	}
	data.Normalize()
	return &data, nil
}

// Save persists the whole document with an upserting merge write.
func (r *UserDataRepository) Save(ctx context.Context, data model.UserData) error {
	data.Normalize()
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": data.UserID},
		bson.M{"$set": bson.M{
			"favorites":  data.Favorites,
			"saved":      data.Saved,
			"watchLater": data.WatchLater,
		}},
		options.UpdateOne().SetUpsert(true))
	return err
}

func (r *UserDataRepository) RemoveVideoRefs(ctx context.Context, userID, videoID string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{
			"favorites":  videoID,
			"saved":      videoID,
			"watchLater": videoID,
		}})
	return err
}

// Subscribe watches the user-data document and delivers the full snapshot on
// every change.
func (r *UserDataRepository) Subscribe(ctx context.Context, userID string) (<-chan model.UserData, func(), error) {
	streamCtx, cancel := context.WithCancel(ctx)
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"documentKey._id": userID}}},
	}
	stream, err := r.collection.Watch(streamCtx, pipeline)
	if err != nil {
		cancel()
		return nil, nil, err
	}

	ch := make(chan model.UserData, 1)
	go func() {
		defer close(ch)
		defer func() {
			if err := stream.Close(context.Background()); err != nil {
				logger.GetLogger().WithField("error", err).Error("Error while closing change stream")
			}
		}()
		for stream.Next(streamCtx) {
			snapshot, err := r.Get(streamCtx, userID)
			if err != nil {
				logger.GetLogger().WithField("error", err).Error("Error while refetching user data snapshot")
				continue
			}
			select {
			case ch <- *snapshot:
			case <-streamCtx.Done():
				return
			}
		}
	}()
	return ch, cancel, nil
}

func (r *UserDataRepository) GetPersonMap(ctx context.Context, kind string) (*model.PersonMap, error) {
	var pm model.PersonMap
	err := r.persons.FindOne(ctx, bson.M{"_id": kind}).Decode(&pm)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &model.PersonMap{Kind: kind, Images: map[string]string{}}, nil
	}
	if err != nil {
		return nil, err
	}
	if pm.Images == nil {
		pm.Images = map[string]string{}
	}
	return &pm, nil
}

func (r *UserDataRepository) SavePersonMap(ctx context.Context, kind string, images map[string]string) error {
	_, err := r.persons.UpdateOne(ctx,
		bson.M{"_id": kind},
		bson.M{"$set": bson.M{"images": images}},
		options.UpdateOne().SetUpsert(true))
	return err
}
