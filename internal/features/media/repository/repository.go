package repository

import (
	"context"
	"errors"

	"spothop-backend/internal/features/media/models"
)

var ErrMediaNotFound = errors.New("media item not found")

// MediaRepository is the persistence port for media metadata.
type MediaRepository interface {
	Create(ctx context.Context, item *models.MediaItem) error
	GetByID(ctx context.Context, id string) (*models.MediaItem, error)
	ListBySpot(ctx context.Context, spotID string) ([]models.MediaItem, error)
	ListByAuthor(ctx context.Context, authorID string) ([]models.MediaItem, error)
	Delete(ctx context.Context, id string) error
}
