package usecase

import (
	"context"
	"sort"

	"twistedbrody/domain/model"
	"twistedbrody/infrastructure/logger"

	"github.com/google/uuid"
)

// FetchCategories refreshes the category collection.
func (s *Store) FetchCategories(ctx context.Context) []model.Category {
	if !s.ready() {
		return nil
	}
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to fetch categories")
		return s.Categories()
	}
	s.mu.Lock()
	s.categories = categories
	s.mu.Unlock()
	s.broadcast("categories", nil)
	return s.Categories()
}

// AddCategory creates a category of the given type. The type is fixed for the
// category's lifetime.
func (s *Store) AddCategory(ctx context.Context, name, categoryType string) (*model.Category, error) {
	if !s.ready() {
		return nil, nil
	}
	category := model.Category{
		ID:     uuid.NewString(),
		Name:   name,
		UserID: s.userID,
		Type:   categoryType,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to create category")
		return nil, err
	}
	s.mu.Lock()
	s.categories = append(s.categories, category)
	sort.Slice(s.categories, func(i, j int) bool {
		return s.categories[i].Name < s.categories[j].Name
	})
	s.mu.Unlock()
	s.broadcast("categories", nil)
	return &category, nil
}

// RemoveCategory deletes a category. For a video category the cascade rewrites
// every video referencing it first, in bounded batches; the document delete
// commits the removal once the rewrites are done, and the local snapshot
// drops the reference after.
func (s *Store) RemoveCategory(ctx context.Context, id string) error {
	if !s.ready() {
		return nil
	}
	var categoryType string
	s.mu.RLock()
	for _, c := range s.categories {
		if c.ID == id {
			categoryType = c.Type
			break
		}
	}
	s.mu.RUnlock()

	if categoryType == "" || categoryType == model.CategoryTypeVideo {
		rewritten, err := s.videoRepo.RemoveCategoryFromAll(ctx, id)
		if err != nil {
			logger.GetLogger().
				WithField("categoryId", id).
				WithField("error", err).
				Error("Failed to strip category from videos")
			return err
		}
		if rewritten > 0 {
			logger.GetLogger().
				WithField("categoryId", id).
				WithField("videos", rewritten).
				Info("Stripped category from videos")
		}
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		logger.GetLogger().
			WithField("categoryId", id).
			WithField("error", err).
			Error("Failed to delete category")
		return err
	}

	s.mu.Lock()
	out := s.categories[:0]
	for _, c := range s.categories {
		if c.ID != id {
			out = append(out, c)
		}
	}
	s.categories = out
	for i := range s.videos {
		s.videos[i].CategoryIDs = removeString(s.videos[i].CategoryIDs, id)
	}
	s.mu.Unlock()
	s.broadcast("categories", nil)
	return nil
}
