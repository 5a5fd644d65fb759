package usecase

import (
	"context"

	"twistedbrody/infrastructure/logger"
)

// Interaction set names accepted by ToggleInSet.
const (
	SetFavorites  = "favorites"
	SetSaved      = "saved"
	SetWatchLater = "watchLater"
)

// ToggleFavorite flips membership of the video id in the favorites set.
func (s *Store) ToggleFavorite(ctx context.Context, videoID string) bool {
	return s.ToggleInSet(ctx, SetFavorites, videoID)
}

// ToggleSaved flips membership in the saved set.
func (s *Store) ToggleSaved(ctx context.Context, videoID string) bool {
	return s.ToggleInSet(ctx, SetSaved, videoID)
}

// ToggleWatchLater flips membership in the watch-later set.
func (s *Store) ToggleWatchLater(ctx context.Context, videoID string) bool {
	return s.ToggleInSet(ctx, SetWatchLater, videoID)
}

// ToggleInSet flips the video id in the named interaction set and merge-writes
// the whole user-data document. Persistence failures are logged and leave the
// local state untouched, so the toggle stays consistent with the remote store.
// Returns the resulting membership.
func (s *Store) ToggleInSet(ctx context.Context, set, videoID string) bool {
	if !s.ready() {
		return false
	}

	s.mu.RLock()
	data := s.userData
	data.Favorites = append([]string{}, data.Favorites...)
	data.Saved = append([]string{}, data.Saved...)
	data.WatchLater = append([]string{}, data.WatchLater...)
	s.mu.RUnlock()

	var target *[]string
	switch set {
	case SetFavorites:
		target = &data.Favorites
	case SetSaved:
		target = &data.Saved
	case SetWatchLater:
		target = &data.WatchLater
	default:
		logger.GetLogger().WithField("set", set).Warn("Unknown interaction set")
		return false
	}

	member := false
	for _, id := range *target {
		if id == videoID {
			member = true
			break
		}
	}
	if member {
		*target = removeString(*target, videoID)
	} else {
		*target = append(*target, videoID)
	}

	if err := s.userDataRepo.Save(ctx, data); err != nil {
		logger.GetLogger().
			WithField("set", set).
			WithField("videoId", videoID).
			WithField("error", err).
			Error("Failed to persist interaction toggle")
		return member
	}

	s.mu.Lock()
	s.userData = data
	s.mu.Unlock()
	s.broadcast("userData", data)
	return !member
}

// IsInSet reports membership of the video id in the named set.
func (s *Store) IsInSet(set, videoID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ids []string
	switch set {
	case SetFavorites:
		ids = s.userData.Favorites
	case SetSaved:
		ids = s.userData.Saved
	case SetWatchLater:
		ids = s.userData.WatchLater
	}
	for _, id := range ids {
		if id == videoID {
			return true
		}
	}
	return false
}

// FetchPersonMap returns the name → image map of the given kind
// (model.PersonKindActress or model.PersonKindCreator).
func (s *Store) FetchPersonMap(ctx context.Context, kind string) map[string]string {
	if !s.ready() {
		return nil
	}
	personMap, err := s.userDataRepo.GetPersonMap(ctx, kind)
	if err != nil {
		logger.GetLogger().
			WithField("kind", kind).
			WithField("error", err).
			Error("Failed to fetch person map")
		return map[string]string{}
	}
	return personMap.Images
}

// SavePersonImage sets or replaces one name → image entry.
func (s *Store) SavePersonImage(ctx context.Context, kind, name, imageURL string) error {
	if !s.ready() {
		return nil
	}
	personMap, err := s.userDataRepo.GetPersonMap(ctx, kind)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to load person map before save")
		return err
	}
	images := personMap.Images
	if images == nil {
		images = map[string]string{}
	}
	images[name] = imageURL
	if err := s.userDataRepo.SavePersonMap(ctx, kind, images); err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to save person map")
		return err
	}
	s.broadcast(kind, nil)
	return nil
}

// RemovePersonImage drops one entry from the map.
func (s *Store) RemovePersonImage(ctx context.Context, kind, name string) error {
	if !s.ready() {
		return nil
	}
	personMap, err := s.userDataRepo.GetPersonMap(ctx, kind)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to load person map before delete")
		return err
	}
	if personMap.Images == nil {
		return nil
	}
	delete(personMap.Images, name)
	if err := s.userDataRepo.SavePersonMap(ctx, kind, personMap.Images); err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to save person map")
		return err
	}
	s.broadcast(kind, nil)
	return nil
}
