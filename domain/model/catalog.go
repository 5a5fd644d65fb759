package model

// Category types. A category belongs to exactly one type for its lifetime.
const (
	CategoryTypeVideo   = "video"
	CategoryTypeManga   = "manga"
	CategoryTypeGallery = "gallery"
)

type Category struct {
	ID     string `json:"id" bson:"_id"`
	Name   string `json:"name" bson:"name"`
	UserID string `json:"userId" bson:"userId"`
	Type   string `json:"type" bson:"type"`
}

// Playlist holds an ordered list of video ids. Duplicates are only prevented
// by a check before add, not by the data model.
type Playlist struct {
	ID          string   `json:"id" bson:"_id"`
	Name        string   `json:"name" bson:"name"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
	VideoIDs    []string `json:"videoIds" bson:"videoIds"`
	UserID      string   `json:"userId" bson:"userId"`
	CreatedAt   string   `json:"createdAt" bson:"createdAt"`
}

// Manga statuses.
const (
	MangaStatusOngoing   = "ongoing"
	MangaStatusCompleted = "completed"
	MangaStatusHiatus    = "hiatus"
)

// MangaVersion is an alternate scan/translation set of the same title.
// At most one version should carry IsDefault; last writer wins.
type MangaVersion struct {
	ID        string   `json:"id" bson:"id"`
	Name      string   `json:"name" bson:"name"`
	Pages     []string `json:"pages" bson:"pages"`
	IsDefault bool     `json:"isDefault,omitempty" bson:"isDefault,omitempty"`
}

type Manga struct {
	ID          string         `json:"id" bson:"_id"`
	Title       string         `json:"title" bson:"title"`
	Theme       string         `json:"theme,omitempty" bson:"theme,omitempty"`
	Description string         `json:"description,omitempty" bson:"description,omitempty"`
	Author      string         `json:"author,omitempty" bson:"author,omitempty"`
	Genre       string         `json:"genre,omitempty" bson:"genre,omitempty"`
	Status      string         `json:"status,omitempty" bson:"status,omitempty"`
	ReleaseYear int            `json:"releaseYear,omitempty" bson:"releaseYear,omitempty"`
	CoverImage  string         `json:"coverImage" bson:"coverImage"`
	Versions    []MangaVersion `json:"versions" bson:"versions"`
	CreatedAt   string         `json:"createdAt" bson:"createdAt"`
	UserID      string         `json:"userId" bson:"userId"`
	CategoryIDs []string       `json:"categoryIds,omitempty" bson:"categoryIds,omitempty"`
}

type Gallery struct {
	ID          string   `json:"id" bson:"_id"`
	Name        string   `json:"name" bson:"name"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
	CoverImage  string   `json:"coverImage,omitempty" bson:"coverImage,omitempty"`
	Images      []string `json:"images" bson:"images"`
	CreatedAt   string   `json:"createdAt" bson:"createdAt"`
	UserID      string   `json:"userId" bson:"userId"`
	CategoryIDs []string `json:"categoryIds,omitempty" bson:"categoryIds,omitempty"`
}
