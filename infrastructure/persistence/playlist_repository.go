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

type PlaylistRepository struct {
	collection *mongo.Collection
}

func NewPlaylistRepository(db *mongo.Database) repository.IPlaylist {
	return &PlaylistRepository{collection: db.Collection("playlists")}
}

func (r *PlaylistRepository) GetAllByUser(ctx context.Context, userID string) ([]model.Playlist, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}()

	playlists := []model.Playlist{}
	for cursor.Next(ctx) {
		var playlist model.Playlist
		if err := cursor.Decode(&playlist); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while decoding playlist")
			continue
		}
		if playlist.VideoIDs == nil {
			playlist.VideoIDs = []string{}
		}
		playlists = append(playlists, playlist)
	}
	return playlists, cursor.Err()
}

func (r *PlaylistRepository) Create(ctx context.Context, playlist model.Playlist) error {
	_, err := r.collection.InsertOne(ctx, playlist)
	return err
}

func (r *PlaylistRepository) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": patch})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *PlaylistRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *PlaylistRepository) RemoveVideoFromAll(ctx context.Context, userID, videoID string) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"userId": userID, "videoIds": videoID},
		bson.M{"$pull": bson.M{"videoIds": videoID}})
	return err
}

// Subscribe watches the playlist collection and delivers the user's full
// snapshot on every change. The returned func cancels the subscription.
func (r *PlaylistRepository) Subscribe(ctx context.Context, userID string) (<-chan []model.Playlist, func(), error) {
	streamCtx, cancel := context.WithCancel(ctx)
	stream, err := r.collection.Watch(streamCtx, mongo.Pipeline{})
	if err != nil {
		cancel()
		return nil, nil, err
	}

	ch := make(chan []model.Playlist, 1)
	go func() {
		defer close(ch)
		defer func() {
			if err := stream.Close(context.Background()); err != nil {
				logger.GetLogger().WithField("error", err).Error("Error while closing change stream")
			}
		}()
		for stream.Next(streamCtx) {
			snapshot, err := r.GetAllByUser(streamCtx, userID)
			if err != nil {
				logger.GetLogger().WithField("error", err).Error("Error while refetching playlists snapshot")
				continue
			}
			select {
			case ch <- snapshot:
			case <-streamCtx.Done():
				return
			}
		}
	}()
	return ch, cancel, nil
}
