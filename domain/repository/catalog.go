package repository

import (
	"context"

	"twistedbrody/domain/model"
)

// ICategory defines the category collection operations.
type ICategory interface {
	// GetAll returns every category ordered by name ascending.
	GetAll(ctx context.Context) ([]model.Category, error)
	Create(ctx context.Context, category model.Category) error
	Delete(ctx context.Context, id string) error
}

// IPlaylist defines the playlist collection operations.
type IPlaylist interface {
	GetAllByUser(ctx context.Context, userID string) ([]model.Playlist, error)
	Create(ctx context.Context, playlist model.Playlist) error
	Update(ctx context.Context, id string, patch map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	// RemoveVideoFromAll drops the video id from every playlist's videoIds.
	RemoveVideoFromAll(ctx context.Context, userID, videoID string) error
	// Subscribe delivers the user's full playlist snapshot on every remote change.
	// The returned func cancels the subscription.
	Subscribe(ctx context.Context, userID string) (<-chan []model.Playlist, func(), error)
}

// IManga defines the manga collection operations.
type IManga interface {
	GetAll(ctx context.Context) ([]model.Manga, error)
	GetByID(ctx context.Context, id string) (*model.Manga, error)
	Create(ctx context.Context, manga model.Manga) error
	Update(ctx context.Context, id string, patch map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

// IGallery defines the gallery collection operations.
type IGallery interface {
	GetAll(ctx context.Context) ([]model.Gallery, error)
	GetByID(ctx context.Context, id string) (*model.Gallery, error)
	Create(ctx context.Context, gallery model.Gallery) error
	Update(ctx context.Context, id string, patch map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}
