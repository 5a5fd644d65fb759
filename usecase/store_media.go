package usecase

import (
	"context"
	"time"

	"twistedbrody/domain/model"
	"twistedbrody/infrastructure/logger"

	"github.com/google/uuid"
)

// FetchMangas refreshes the manga collection.
func (s *Store) FetchMangas(ctx context.Context) []model.Manga {
	if !s.ready() {
		return nil
	}
	mangas, err := s.mangaRepo.GetAll(ctx)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to fetch mangas")
		return s.Mangas()
	}
	s.mu.Lock()
	s.mangas = mangas
	s.mu.Unlock()
	s.broadcast("mangas", nil)
	return s.Mangas()
}

// AddManga creates a manga. A manga always carries at least one version; a
// payload without versions gets a single default version from its cover.
func (s *Store) AddManga(ctx context.Context, manga model.Manga) (*model.Manga, error) {
	if !s.ready() {
		return nil, nil
	}
	if manga.ID == "" {
		manga.ID = uuid.NewString()
	}
	if manga.UserID == "" {
		manga.UserID = s.userID
	}
	if manga.CreatedAt == "" {
		manga.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if len(manga.Versions) == 0 {
		manga.Versions = []model.MangaVersion{{
			ID:        uuid.NewString(),
			Name:      "Original",
			Pages:     []string{},
			IsDefault: true,
		}}
	}
	if err := s.mangaRepo.Create(ctx, manga); err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to create manga")
		return nil, err
	}
	s.mu.Lock()
	s.mangas = append([]model.Manga{manga}, s.mangas...)
	s.mu.Unlock()
	s.broadcast("mangas", nil)
	return &manga, nil
}

// UpdateManga applies a partial patch, then refreshes the document locally.
func (s *Store) UpdateManga(ctx context.Context, id string, patch map[string]interface{}) error {
	if !s.ready() {
		return nil
	}
	if err := s.mangaRepo.Update(ctx, id, patch); err != nil {
		logger.GetLogger().
			WithField("mangaId", id).
			WithField("error", err).
			Error("Failed to update manga")
		return err
	}
	updated, err := s.mangaRepo.GetByID(ctx, id)
	if err != nil || updated == nil {
		logger.GetLogger().WithField("mangaId", id).Warn("Could not refresh manga after update")
		return nil
	}
	s.mu.Lock()
	for i := range s.mangas {
		if s.mangas[i].ID == id {
			s.mangas[i] = *updated
			break
		}
	}
	s.mu.Unlock()
	s.broadcast("mangas", nil)
	return nil
}

// RemoveManga deletes a manga.
func (s *Store) RemoveManga(ctx context.Context, id string) error {
	if !s.ready() {
		return nil
	}
	if err := s.mangaRepo.Delete(ctx, id); err != nil {
		logger.GetLogger().
			WithField("mangaId", id).
			WithField("error", err).
			Error("Failed to delete manga")
		return err
	}
	s.mu.Lock()
	out := s.mangas[:0]
	for _, m := range s.mangas {
		if m.ID != id {
			out = append(out, m)
		}
	}
	s.mangas = out
	s.mu.Unlock()
	s.broadcast("mangas", nil)
	return nil
}

// AddMangaVersion appends a version. Marking it default clears the flag on
// every other version (last writer wins).
func (s *Store) AddMangaVersion(ctx context.Context, mangaID string, version model.MangaVersion) error {
	if !s.ready() {
		return nil
	}
	return s.rewriteVersions(ctx, mangaID, func(versions []model.MangaVersion) []model.MangaVersion {
		if version.ID == "" {
			version.ID = uuid.NewString()
		}
		if version.Pages == nil {
			version.Pages = []string{}
		}
		if version.IsDefault {
			for i := range versions {
				versions[i].IsDefault = false
			}
		}
		return append(versions, version)
	})
}

// RemoveMangaVersion drops a version. The last remaining version cannot be
// removed.
func (s *Store) RemoveMangaVersion(ctx context.Context, mangaID, versionID string) error {
	if !s.ready() {
		return nil
	}
	return s.rewriteVersions(ctx, mangaID, func(versions []model.MangaVersion) []model.MangaVersion {
		if len(versions) <= 1 {
			return versions
		}
		out := versions[:0]
		for _, v := range versions {
			if v.ID != versionID {
				out = append(out, v)
			}
		}
		return out
	})
}

// SetDefaultMangaVersion marks one version default and clears the rest.
func (s *Store) SetDefaultMangaVersion(ctx context.Context, mangaID, versionID string) error {
	if !s.ready() {
		return nil
	}
	return s.rewriteVersions(ctx, mangaID, func(versions []model.MangaVersion) []model.MangaVersion {
		for i := range versions {
			versions[i].IsDefault = versions[i].ID == versionID
		}
		return versions
	})
}

// rewriteVersions loads the manga, transforms its version list and writes the
// whole list back in one patch.
func (s *Store) rewriteVersions(ctx context.Context, mangaID string, transform func([]model.MangaVersion) []model.MangaVersion) error {
	manga, err := s.mangaRepo.GetByID(ctx, mangaID)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to load manga for version rewrite")
		return err
	}
	if manga == nil {
		return nil
	}
	versions := transform(append([]model.MangaVersion{}, manga.Versions...))
	if err := s.mangaRepo.Update(ctx, mangaID, map[string]interface{}{"versions": versions}); err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to write manga versions")
		return err
	}
	s.mu.Lock()
	for i := range s.mangas {
		if s.mangas[i].ID == mangaID {
			s.mangas[i].Versions = versions
			break
		}
	}
	s.mu.Unlock()
	s.broadcast("mangas", nil)
	return nil
}

// FetchGalleries refreshes the gallery collection.
func (s *Store) FetchGalleries(ctx context.Context) []model.Gallery {
	if !s.ready() {
		return nil
	}
	galleries, err := s.galleryRepo.GetAll(ctx)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to fetch galleries")
		return s.Galleries()
	}
	s.mu.Lock()
	s.galleries = galleries
	s.mu.Unlock()
	s.broadcast("galleries", nil)
	return s.Galleries()
}

// AddGallery creates a gallery. An empty gallery is valid.
func (s *Store) AddGallery(ctx context.Context, gallery model.Gallery) (*model.Gallery, error) {
	if !s.ready() {
		return nil, nil
	}
	if gallery.ID == "" {
		gallery.ID = uuid.NewString()
	}
	if gallery.UserID == "" {
		gallery.UserID = s.userID
	}
	if gallery.CreatedAt == "" {
		gallery.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if gallery.Images == nil {
		gallery.Images = []string{}
	}
	if gallery.CoverImage == "" && len(gallery.Images) > 0 {
		gallery.CoverImage = gallery.Images[0]
	}
	if err := s.galleryRepo.Create(ctx, gallery); err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to create gallery")
		return nil, err
	}
	s.mu.Lock()
	s.galleries = append([]model.Gallery{gallery}, s.galleries...)
	s.mu.Unlock()
	s.broadcast("galleries", nil)
	return &gallery, nil
}

// UpdateGallery applies a partial patch, then refreshes the document locally.
func (s *Store) UpdateGallery(ctx context.Context, id string, patch map[string]interface{}) error {
	if !s.ready() {
		return nil
	}
	if err := s.galleryRepo.Update(ctx, id, patch); err != nil {
		logger.GetLogger().
			WithField("galleryId", id).
			WithField("error", err).
			Error("Failed to update gallery")
		return err
	}
	updated, err := s.galleryRepo.GetByID(ctx, id)
	if err != nil || updated == nil {
		logger.GetLogger().WithField("galleryId", id).Warn("Could not refresh gallery after update")
		return nil
	}
	s.mu.Lock()
	for i := range s.galleries {
		if s.galleries[i].ID == id {
			s.galleries[i] = *updated
			break
		}
	}
	s.mu.Unlock()
	s.broadcast("galleries", nil)
	return nil
}

// RemoveGallery deletes a gallery.
func (s *Store) RemoveGallery(ctx context.Context, id string) error {
	if !s.ready() {
		return nil
	}
	if err := s.galleryRepo.Delete(ctx, id); err != nil {
		logger.GetLogger().
			WithField("galleryId", id).
			WithField("error", err).
			Error("Failed to delete gallery")
		return err
	}
	s.mu.Lock()
	out := s.galleries[:0]
	for _, g := range s.galleries {
		if g.ID != id {
			out = append(out, g)
		}
	}
	s.galleries = out
	s.mu.Unlock()
	s.broadcast("galleries", nil)
	return nil
}
