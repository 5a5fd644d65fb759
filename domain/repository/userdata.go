package repository

import (
	"context"
	"time"

	"twistedbrody/domain/model"
)

// IUserData defines the user-scoped singleton documents: the three interaction
// id sets plus the actress/creator image maps.
type IUserData interface {
	Get(ctx context.Context, userID string) (*model.UserData, error)
	// Save persists the whole document with a merge write (last writer wins).
	Save(ctx context.Context, data model.UserData) error
	// RemoveVideoRefs drops the video id from all three sets.
	RemoveVideoRefs(ctx context.Context, userID, videoID string) error
	// Subscribe delivers the full user-data snapshot on every remote change.
	Subscribe(ctx context.Context, userID string) (<-chan model.UserData, func(), error)

	GetPersonMap(ctx context.Context, kind string) (*model.PersonMap, error)
	SavePersonMap(ctx context.Context, kind string, images map[string]string) error
}

// IHistory defines the viewing-history collection. One document per video id.
type IHistory interface {
	// List returns the most recent entries, viewedAt descending, capped at limit.
	List(ctx context.Context, limit int) ([]model.HistoryEntry, error)
	// Record upserts the entry for the video with the given view time.
	Record(ctx context.Context, videoID string, viewedAt time.Time) error
	Delete(ctx context.Context, videoID string) error
}

// ISettings persists the local-only UI settings.
type ISettings interface {
	Load() (model.Settings, error)
	Save(settings model.Settings) error
}
