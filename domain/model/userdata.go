package model

import "time"

// DefaultUserID is the fixed owner id used for every document. Multi-user
// support is not implemented.
const DefaultUserID = "twistedbrody"

// UserData is the user-scoped singleton document holding the three
// interaction id sets. Stored as a single document keyed by the user id.
type UserData struct {
	UserID     string   `json:"userId" bson:"_id"`
	Favorites  []string `json:"favorites" bson:"favorites"`
	Saved      []string `json:"saved" bson:"saved"`
	WatchLater []string `json:"watchLater" bson:"watchLater"`
}

// Normalize guarantees non-nil id sets.
func (u *UserData) Normalize() {
	if u.Favorites == nil {
		u.Favorites = []string{}
	}
	if u.Saved == nil {
		u.Saved = []string{}
	}
	if u.WatchLater == nil {
		u.WatchLater = []string{}
	}
}

// Person map kinds, each stored as its own singleton document.
const (
	PersonKindActress = "actresses"
	PersonKindCreator = "creators"
)

// PersonMap is a name → image URL map for actresses or creators.
type PersonMap struct {
	Kind   string            `json:"kind" bson:"_id"`
	Images map[string]string `json:"images" bson:"images"`
}

// HistoryEntry records the latest view of a video. One document per video id,
// so history never holds duplicates.
type HistoryEntry struct {
	VideoID  string    `json:"videoId" bson:"_id"`
	ViewedAt time.Time `json:"viewedAt" bson:"viewedAt"`
}

// Settings is the local-only UI preference set. It has no server representation.
type Settings struct {
	ShowHiddenVideos   bool `json:"showHiddenVideos"`
	ShowHiddenInShorts bool `json:"showHiddenInShorts"`
	ShowAddButton      bool `json:"showAddButton"`
	MangaCarouselMode  bool `json:"mangaCarouselMode"`
}

// DefaultSettings is the baseline used when no settings file exists yet.
func DefaultSettings() Settings {
	return Settings{
		ShowHiddenVideos:   false,
		ShowHiddenInShorts: false,
		ShowAddButton:      true,
		MangaCarouselMode:  false,
	}
}
