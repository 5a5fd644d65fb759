package model

// ServerLink is an alternate mirror for a video.
type ServerLink struct {
	URL  string `json:"url" bson:"url"`
	Name string `json:"name" bson:"name"`
}

// Video is a catalog entry. IsShort flags it as a shorts-feed post rather than
// a regular feed video; both share this shape.
type Video struct {
	ID                 string       `json:"id" bson:"_id"`
	Title              string       `json:"title" bson:"title"`
	Description        string       `json:"description,omitempty" bson:"description,omitempty"`
	URL                string       `json:"url" bson:"url"`
	Servers            []ServerLink `json:"servers" bson:"servers"`
	CustomThumbnailURL string       `json:"customThumbnailUrl,omitempty" bson:"customThumbnailUrl,omitempty"`
	Hashtags           []string     `json:"hashtags" bson:"hashtags"`
	CategoryIDs        []string     `json:"categoryIds" bson:"categoryIds"`
	UserID             string       `json:"userId" bson:"userId"`
	CreatedAt          string       `json:"createdAt" bson:"createdAt"`
	IsShort            bool         `json:"isShort" bson:"isShort"`
	Actors             []string     `json:"actors,omitempty" bson:"actors,omitempty"`
	GalleryImages      []string     `json:"galleryImages,omitempty" bson:"galleryImages,omitempty"`
	Views              int64        `json:"views" bson:"views"`
	IsHidden           bool         `json:"isHidden" bson:"isHidden"`
	LinkedVideos       []string     `json:"linkedVideos,omitempty" bson:"linkedVideos,omitempty"`

	// LegacyCategoryID carries the old single-category field of documents written
	// before categoryIds existed. Migrated into CategoryIDs by Normalize.
	LegacyCategoryID string `json:"-" bson:"categoryId,omitempty"`
}

// Normalize migrates legacy fields and guarantees the array invariants
// (categoryIds, servers and hashtags are always non-nil).
func (v *Video) Normalize() {
	if v.LegacyCategoryID != "" {
		found := false
		for _, id := range v.CategoryIDs {
			if id == v.LegacyCategoryID {
				found = true
				break
			}
		}
		if !found {
			v.CategoryIDs = append(v.CategoryIDs, v.LegacyCategoryID)
		}
		v.LegacyCategoryID = ""
	}
	if v.CategoryIDs == nil {
		v.CategoryIDs = []string{}
	}
	if v.Servers == nil {
		v.Servers = []ServerLink{}
	}
	if v.Hashtags == nil {
		v.Hashtags = []string{}
	}
}
