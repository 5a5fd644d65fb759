package repository

import (
	"context"

	"twistedbrody/domain/model"
)

// IVideo defines the video collection operations.
type IVideo interface {
	// GetAll returns every video ordered by createdAt descending.
	GetAll(ctx context.Context) ([]model.Video, error)
	GetByID(ctx context.Context, id string) (*model.Video, error)
	Create(ctx context.Context, video model.Video) error
	// Update applies a partial-field patch to the document.
	Update(ctx context.Context, id string, patch map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	// IncrementViews bumps the view counter by one. Best-effort; races between
	// concurrent increments are tolerated.
	IncrementViews(ctx context.Context, id string) error
	// RemoveCategoryFromAll rewrites every video referencing the category to drop
	// the reference, batched. Returns the number of rewritten documents.
	RemoveCategoryFromAll(ctx context.Context, categoryID string) (int64, error)
}
