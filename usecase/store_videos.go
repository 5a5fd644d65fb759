package usecase

import (
	"context"
	"time"

	"twistedbrody/domain/model"
	"twistedbrody/domain/provider"
	"twistedbrody/infrastructure/logger"

	"github.com/google/uuid"
)

// FetchVideos refreshes the video collection from the remote store. Fetch
// failures are logged and leave the previous snapshot in place.
func (s *Store) FetchVideos(ctx context.Context) []model.Video {
	if !s.ready() {
		return nil
	}
	videos, err := s.videoRepo.GetAll(ctx)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to fetch videos")
		return s.Videos()
	}
	s.mu.Lock()
	s.videos = videos
	s.mu.Unlock()
	s.broadcast("videos", nil)
	return s.Videos()
}

// AddVideo creates a video. Missing fields receive defaults (id, owner,
// creation time, zeroed counters, empty arrays); the hidden flag is taken as
// given. References to categories and other videos are cleaned against the
// known state, and a YouTube URL with no title gets its title and description
// autofilled when a metadata resolver is configured. The local snapshot is
// patched only after the remote write succeeds.
func (s *Store) AddVideo(ctx context.Context, video model.Video) (*model.Video, error) {
	if !s.ready() {
		return nil, nil
	}
	if video.ID == "" {
		video.ID = uuid.NewString()
	}
	if video.UserID == "" {
		video.UserID = s.userID
	}
	if video.CreatedAt == "" {
		video.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	video.Views = 0
	video.Normalize()
	video.CategoryIDs = s.cleanCategoryRefs(video.CategoryIDs)
	video.LinkedVideos = s.cleanLinkedRefs(video.LinkedVideos, video.ID)

	s.autofillMetadata(ctx, &video)

	if err := s.videoRepo.Create(ctx, video); err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to create video")
		return nil, err
	}

	s.mu.Lock()
	s.videos = append([]model.Video{video}, s.videos...)
	s.mu.Unlock()
	s.broadcast("videos", nil)
	return &video, nil
}

// UpdateVideo applies a partial patch remotely, then refreshes the single
// document into the local snapshot. Reference lists in the patch are cleaned
// the same way AddVideo cleans them.
func (s *Store) UpdateVideo(ctx context.Context, id string, patch map[string]interface{}) error {
	if !s.ready() {
		return nil
	}
	if raw, ok := patch["categoryIds"]; ok {
		if ids, ok := stringSlice(raw); ok {
			patch["categoryIds"] = s.cleanCategoryRefs(ids)
		}
	}
	if raw, ok := patch["linkedVideos"]; ok {
		if ids, ok := stringSlice(raw); ok {
			patch["linkedVideos"] = s.cleanLinkedRefs(ids, id)
		}
	}
	if err := s.videoRepo.Update(ctx, id, patch); err != nil {
		logger.GetLogger().
			WithField("videoId", id).
			WithField("error", err).
			Error("Failed to update video")
		return err
	}

	updated, err := s.videoRepo.GetByID(ctx, id)
	if err != nil || updated == nil {
		// Remote write succeeded; a stale local copy is tolerable until the
		// next fetch.
		logger.GetLogger().WithField("videoId", id).Warn("Could not refresh video after update")
		return nil
	}
	s.mu.Lock()
	for i := range s.videos {
		if s.videos[i].ID == id {
			s.videos[i] = *updated
			break
		}
	}
	s.mu.Unlock()
	s.broadcast("videos", nil)
	return nil
}

// RemoveVideo deletes a video and cascades the cleanup: history entry, the
// three interaction sets, and every playlist referencing it. The delete itself
// is fatal on failure; cleanup steps are best-effort.
func (s *Store) RemoveVideo(ctx context.Context, id string) error {
	if !s.ready() {
		return nil
	}
	if err := s.videoRepo.Delete(ctx, id); err != nil {
		logger.GetLogger().
			WithField("videoId", id).
			WithField("error", err).
			Error("Failed to delete video")
		return err
	}

	if err := s.historyRepo.Delete(ctx, id); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to remove history entry for deleted video")
	}
	if err := s.userDataRepo.RemoveVideoRefs(ctx, s.userID, id); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to remove interaction refs for deleted video")
	}
	if err := s.playlistRepo.RemoveVideoFromAll(ctx, s.userID, id); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to remove playlist refs for deleted video")
	}

	s.mu.Lock()
	s.videos = removeVideoByID(s.videos, id)
	s.history = removeHistoryByID(s.history, id)
	s.userData.Favorites = removeString(s.userData.Favorites, id)
	s.userData.Saved = removeString(s.userData.Saved, id)
	s.userData.WatchLater = removeString(s.userData.WatchLater, id)
	for i := range s.playlists {
		s.playlists[i].VideoIDs = removeString(s.playlists[i].VideoIDs, id)
	}
	s.mu.Unlock()
	s.broadcast("videos", nil)
	return nil
}

// RecordView bumps the view counter and upserts the history entry. The remote
// increment is fire-and-forget; the local counter always advances so the UI
// reflects the view immediately.
func (s *Store) RecordView(id string) {
	if !s.ready() {
		return
	}
	now := time.Now().UTC()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.videoRepo.IncrementViews(ctx, id); err != nil {
			logger.GetLogger().
				WithField("videoId", id).
				WithField("error", err).
				Warn("View counter increment failed")
		}
		if err := s.historyRepo.Record(ctx, id, now); err != nil {
			logger.GetLogger().
				WithField("videoId", id).
				WithField("error", err).
				Warn("History record failed")
		}
	}()

	s.mu.Lock()
	for i := range s.videos {
		if s.videos[i].ID == id {
			s.videos[i].Views++
			break
		}
	}
	s.history = removeHistoryByID(s.history, id)
	s.history = append([]model.HistoryEntry{{VideoID: id, ViewedAt: now}}, s.history...)
	if len(s.history) > historyLimit {
		s.history = s.history[:historyLimit]
	}
	s.mu.Unlock()
}

// FetchHistory refreshes the capped viewing history.
func (s *Store) FetchHistory(ctx context.Context) []model.HistoryEntry {
	if !s.ready() {
		return nil
	}
	entries, err := s.historyRepo.List(ctx, historyLimit)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to fetch history")
		return s.History()
	}
	s.mu.Lock()
	s.history = entries
	s.mu.Unlock()
	return s.History()
}

// RemoveHistoryEntry drops one entry from the viewing history.
func (s *Store) RemoveHistoryEntry(ctx context.Context, videoID string) error {
	if !s.ready() {
		return nil
	}
	if err := s.historyRepo.Delete(ctx, videoID); err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to delete history entry")
		return err
	}
	s.mu.Lock()
	s.history = removeHistoryByID(s.history, videoID)
	s.mu.Unlock()
	return nil
}

func (s *Store) autofillMetadata(ctx context.Context, video *model.Video) {
	if s.metadata == nil || video.Title != "" {
		return
	}
	if provider.Detect(video.URL) != provider.YouTube {
		return
	}
	id := provider.VideoID(video.URL)
	if id == "" {
		return
	}
	meta, err := s.metadata.VideoMetadata(ctx, id)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Metadata autofill failed")
		return
	}
	video.Title = meta.Title
	if video.Description == "" {
		video.Description = meta.Description
	}
}

func removeVideoByID(videos []model.Video, id string) []model.Video {
	out := videos[:0]
	for _, v := range videos {
		if v.ID != id {
			out = append(out, v)
		}
	}
	return out
}

func removeHistoryByID(entries []model.HistoryEntry, videoID string) []model.HistoryEntry {
	out := entries[:0]
	for _, e := range entries {
		if e.VideoID != videoID {
			out = append(out, e)
		}
	}
	return out
}

// removeString allocates a fresh slice rather than compacting in place:
// the input may back a snapshot previously handed out by an accessor.
func removeString(items []string, target string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item != target {
			out = append(out, item)
		}
	}
	return out
}

// cleanCategoryRefs drops category ids no known category carries.
func (s *Store) cleanCategoryRefs(ids []string) []string {
	if len(ids) == 0 {
		return ids
	}
	s.mu.RLock()
	known := make(map[string]struct{}, len(s.categories))
	for _, c := range s.categories {
		known[c.ID] = struct{}{}
	}
	s.mu.RUnlock()
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := known[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// cleanLinkedRefs drops linked-video ids no known video carries, and
// self-links.
func (s *Store) cleanLinkedRefs(ids []string, selfID string) []string {
	if len(ids) == 0 {
		return ids
	}
	s.mu.RLock()
	known := make(map[string]struct{}, len(s.videos))
	for _, v := range s.videos {
		known[v.ID] = struct{}{}
	}
	s.mu.RUnlock()
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == selfID {
			continue
		}
		if _, ok := known[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// stringSlice coerces a bound JSON array into []string. Patch bodies arrive
// from gin as []interface{}.
func stringSlice(v interface{}) ([]string, bool) {
	switch vals := v.(type) {
	case []string:
		return vals, true
	case []interface{}:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			str, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	}
	return nil, false
}
