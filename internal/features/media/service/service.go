package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"spothop-backend/internal/common/cache"
	apperrors "spothop-backend/internal/common/errors"
	"spothop-backend/internal/common/logger"
	"spothop-backend/internal/features/media/models"
	"spothop-backend/internal/features/media/repository"
	spotrepo "spothop-backend/internal/features/spot/repository"
)

// MediaService manages the media metadata registry. Binaries are uploaded
// to the hosted object store by the client; this service records the result.
type MediaService struct {
	repo     repository.MediaRepository
	spotRepo spotrepo.SpotRepository
	cache    cache.Cache
	spotTTL  time.Duration
	log      zerolog.Logger
}

func NewMediaService(repo repository.MediaRepository, spotRepo spotrepo.SpotRepository, cacheService cache.Cache, spotTTL time.Duration) *MediaService {
	return &MediaService{
		repo:     repo,
		spotRepo: spotRepo,
		cache:    cacheService,
		spotTTL:  spotTTL,
		log:      logger.Component("media_service"),
	}
}

// Register stores the metadata for an uploaded media item, attached to an
// existing spot.
func (s *MediaService) Register(ctx context.Context, userID string, create models.MediaCreate) (*models.MediaItem, error) {
	if !create.Type.Valid() {
		return nil, apperrors.NewValidationError("type", "must be photo or video")
	}

	if _, err := s.spotRepo.GetByID(ctx, create.SpotID); err != nil {
		if errors.Is(err, spotrepo.ErrSpotNotFound) {
			return nil, apperrors.NewSpotNotFoundError(create.SpotID)
		}
		return nil, apperrors.NewDatabaseError("get spot", err)
	}

	item := &models.MediaItem{
		ID:           uuid.NewString(),
		SpotID:       create.SpotID,
		AuthorID:     userID,
		Type:         create.Type,
		URL:          create.URL,
		ThumbnailURL: create.ThumbnailURL,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, apperrors.NewDatabaseError("create media item", err)
	}

	s.cache.Delete(ctx, fmt.Sprintf("spot_media:%s", create.SpotID))
	s.log.Info().
		Str("media_id", item.ID).
		Str("spot_id", item.SpotID).
		Str("type", string(item.Type)).
		Msg("media registered")
	return item, nil
}

func (s *MediaService) GetByID(ctx context.Context, mediaID string) (*models.MediaItem, error) {
	item, err := s.repo.GetByID(ctx, mediaID)
	if err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeMediaNotFound, "media item not found").
				WithDetail("media_id", mediaID)
		}
		return nil, apperrors.NewDatabaseError("get media item", err)
	}
	return item, nil
}

// ListBySpot returns a spot's media, newest first, served from cache when
// possible.
func (s *MediaService) ListBySpot(ctx context.Context, spotID string) ([]models.MediaItem, error) {
	cacheKey := fmt.Sprintf("spot_media:%s", spotID)

	var items []models.MediaItem
	err := s.cache.GetOrSet(ctx, cacheKey, &items, s.spotTTL, func() (interface{}, error) {
		return s.repo.ListBySpot(ctx, spotID)
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("list spot media", err)
	}
	return items, nil
}

func (s *MediaService) ListByAuthor(ctx context.Context, authorID string) ([]models.MediaItem, error) {
	items, err := s.repo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list author media", err)
	}
	return items, nil
}

// Delete removes a media item. Only the author can delete it.
func (s *MediaService) Delete(ctx context.Context, userID, mediaID string) error {
	item, err := s.GetByID(ctx, mediaID)
	if err != nil {
		return err
	}
	if item.AuthorID != userID {
		return apperrors.NewForbiddenError("not the media author")
	}

	if err := s.repo.Delete(ctx, mediaID); err != nil {
		return apperrors.NewDatabaseError("delete media item", err)
	}
	s.cache.Delete(ctx, fmt.Sprintf("spot_media:%s", item.SpotID))
	return nil
}
