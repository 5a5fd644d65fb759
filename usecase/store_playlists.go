package usecase

import (
	"context"
	"time"

	"twistedbrody/domain/model"
	"twistedbrody/infrastructure/logger"

	"github.com/google/uuid"
)

// CreatePlaylist creates an empty playlist.
func (s *Store) CreatePlaylist(ctx context.Context, name, description string) (*model.Playlist, error) {
	if !s.ready() {
		return nil, nil
	}
	playlist := model.Playlist{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		VideoIDs:    []string{},
		UserID:      s.userID,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.playlistRepo.Create(ctx, playlist); err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to create playlist")
		return nil, err
	}
	s.mu.Lock()
	s.playlists = append([]model.Playlist{playlist}, s.playlists...)
	s.mu.Unlock()
	s.broadcast("playlists", nil)
	return &playlist, nil
}

// UpdatePlaylist applies a partial patch to a playlist.
func (s *Store) UpdatePlaylist(ctx context.Context, id string, patch map[string]interface{}) error {
	if !s.ready() {
		return nil
	}
	if err := s.playlistRepo.Update(ctx, id, patch); err != nil {
		logger.GetLogger().
			WithField("playlistId", id).
			WithField("error", err).
			Error("Failed to update playlist")
		return err
	}
	s.mu.Lock()
	for i := range s.playlists {
		if s.playlists[i].ID != id {
			continue
		}
		if name, ok := patch["name"].(string); ok {
			s.playlists[i].Name = name
		}
		if description, ok := patch["description"].(string); ok {
			s.playlists[i].Description = description
		}
		break
	}
	s.mu.Unlock()
	s.broadcast("playlists", nil)
	return nil
}

// DeletePlaylist removes a playlist. Videos themselves are untouched.
func (s *Store) DeletePlaylist(ctx context.Context, id string) error {
	if !s.ready() {
		return nil
	}
	if err := s.playlistRepo.Delete(ctx, id); err != nil {
		logger.GetLogger().
			WithField("playlistId", id).
			WithField("error", err).
			Error("Failed to delete playlist")
		return err
	}
	s.mu.Lock()
	out := s.playlists[:0]
	for _, p := range s.playlists {
		if p.ID != id {
			out = append(out, p)
		}
	}
	s.playlists = out
	s.mu.Unlock()
	s.broadcast("playlists", nil)
	return nil
}

// AddVideoToPlaylist appends the video id unless it is already present. The
// duplicate check is the only guard; the data model allows duplicates.
func (s *Store) AddVideoToPlaylist(ctx context.Context, playlistID, videoID string) error {
	if !s.ready() {
		return nil
	}
	s.mu.RLock()
	var videoIDs []string
	found := false
	for _, p := range s.playlists {
		if p.ID == playlistID {
			found = true
			for _, id := range p.VideoIDs {
				if id == videoID {
					s.mu.RUnlock()
					return nil
				}
			}
			videoIDs = append(append([]string{}, p.VideoIDs...), videoID)
			break
		}
	}
	s.mu.RUnlock()
	if !found {
		return nil
	}

	if err := s.playlistRepo.Update(ctx, playlistID, map[string]interface{}{"videoIds": videoIDs}); err != nil {
		logger.GetLogger().
			WithField("playlistId", playlistID).
			WithField("error", err).
			Error("Failed to add video to playlist")
		return err
	}
	s.setPlaylistVideos(playlistID, videoIDs)
	return nil
}

// RemoveVideoFromPlaylist drops the video id; removing the last video leaves
// an empty playlist, never a deleted one.
func (s *Store) RemoveVideoFromPlaylist(ctx context.Context, playlistID, videoID string) error {
	if !s.ready() {
		return nil
	}
	s.mu.RLock()
	var videoIDs []string
	found := false
	for _, p := range s.playlists {
		if p.ID == playlistID {
			found = true
			videoIDs = removeString(append([]string{}, p.VideoIDs...), videoID)
			break
		}
	}
	s.mu.RUnlock()
	if !found {
		return nil
	}

	if err := s.playlistRepo.Update(ctx, playlistID, map[string]interface{}{"videoIds": videoIDs}); err != nil {
		logger.GetLogger().
			WithField("playlistId", playlistID).
			WithField("error", err).
			Error("Failed to remove video from playlist")
		return err
	}
	s.setPlaylistVideos(playlistID, videoIDs)
	return nil
}

func (s *Store) setPlaylistVideos(playlistID string, videoIDs []string) {
	s.mu.Lock()
	for i := range s.playlists {
		if s.playlists[i].ID == playlistID {
			s.playlists[i].VideoIDs = videoIDs
			break
		}
	}
	s.mu.Unlock()
	s.broadcast("playlists", nil)
}
