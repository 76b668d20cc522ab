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
	"spothop-backend/internal/common/validation"
	"spothop-backend/internal/features/spot/models"
	"spothop-backend/internal/features/spot/repository"
	"spothop-backend/internal/utils/geo"
)

// SpotService manages spots, favorites and comments.
type SpotService struct {
	repo    repository.SpotRepository
	cache   cache.Cache
	spotTTL time.Duration
	log     zerolog.Logger
}

func NewSpotService(repo repository.SpotRepository, cacheService cache.Cache, spotTTL time.Duration) *SpotService {
	return &SpotService{
		repo:    repo,
		cache:   cacheService,
		spotTTL: spotTTL,
		log:     logger.Component("spot_service"),
	}
}

func (s *SpotService) Create(ctx context.Context, userID string, create models.SpotCreate) (*models.Spot, error) {
	if err := validateSpotTypes(create.SpotTypes); err != nil {
		return nil, err
	}
	if create.Difficulty != "" && !validation.IsValidDifficulty(create.Difficulty) {
		return nil, apperrors.NewValidationError("difficulty", "unknown difficulty")
	}
	if create.KickoutRisk != 0 {
		if err := validation.ValidateKickoutRisk(create.KickoutRisk); err != nil {
			return nil, apperrors.NewValidationError("kickout_risk", err.Error())
		}
	}
	if (create.Latitude == nil) != (create.Longitude == nil) {
		return nil, apperrors.NewValidationError("location", "latitude and longitude must be set together")
	}
	if create.Latitude != nil {
		if err := validation.ValidateLatLng(*create.Latitude, *create.Longitude); err != nil {
			return nil, apperrors.NewValidationError("location", err.Error())
		}
	}

	now := time.Now().UTC()
	spot := &models.Spot{
		ID:           uuid.NewString(),
		CreatedBy:    userID,
		Name:         create.Name,
		Description:  create.Description,
		SpotTypes:    create.SpotTypes,
		Difficulty:   create.Difficulty,
		IsLit:        create.IsLit,
		KickoutRisk:  create.KickoutRisk,
		Latitude:     create.Latitude,
		Longitude:    create.Longitude,
		ThumbnailURL: create.ThumbnailURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, spot); err != nil {
		return nil, apperrors.NewDatabaseError("create spot", err)
	}

	s.cache.DeletePattern(ctx, "spot_list:*")
	s.log.Info().Str("spot_id", spot.ID).Str("user_id", userID).Msg("spot created")
	return spot, nil
}

func (s *SpotService) GetByID(ctx context.Context, spotID string) (*models.Spot, error) {
	cacheKey := fmt.Sprintf("spot:%s", spotID)

	var spot models.Spot
	err := s.cache.GetOrSet(ctx, cacheKey, &spot, s.spotTTL, func() (interface{}, error) {
		sp, err := s.repo.GetByID(ctx, spotID)
		if err != nil {
			return nil, err
		}
		return sp, nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrSpotNotFound) {
			return nil, apperrors.NewSpotNotFoundError(spotID)
		}
		return nil, apperrors.NewDatabaseError("get spot", err)
	}
	return &spot, nil
}

// Update applies a partial update. Only the creator can edit a spot.
func (s *SpotService) Update(ctx context.Context, userID, spotID string, update models.SpotUpdate) (*models.Spot, error) {
	spot, err := s.mustOwn(ctx, userID, spotID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		if err := validation.ValidateTitle(*update.Name); err != nil {
			return nil, apperrors.NewValidationError("name", err.Error())
		}
		spot.Name = *update.Name
	}
	if update.Description != nil {
		spot.Description = *update.Description
	}
	if update.SpotTypes != nil {
		if err := validateSpotTypes(update.SpotTypes); err != nil {
			return nil, err
		}
		spot.SpotTypes = update.SpotTypes
	}
	if update.Difficulty != nil {
		if *update.Difficulty != "" && !validation.IsValidDifficulty(*update.Difficulty) {
			return nil, apperrors.NewValidationError("difficulty", "unknown difficulty")
		}
		spot.Difficulty = *update.Difficulty
	}
	if update.IsLit != nil {
		spot.IsLit = update.IsLit
	}
	if update.KickoutRisk != nil {
		if err := validation.ValidateKickoutRisk(*update.KickoutRisk); err != nil {
			return nil, apperrors.NewValidationError("kickout_risk", err.Error())
		}
		spot.KickoutRisk = *update.KickoutRisk
	}
	if update.Latitude != nil {
		spot.Latitude = update.Latitude
	}
	if update.Longitude != nil {
		spot.Longitude = update.Longitude
	}
	if spot.HasCoordinates() {
		if err := validation.ValidateLatLng(*spot.Latitude, *spot.Longitude); err != nil {
			return nil, apperrors.NewValidationError("location", err.Error())
		}
	}
	if update.ThumbnailURL != nil {
		spot.ThumbnailURL = *update.ThumbnailURL
	}
	spot.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, spot); err != nil {
		return nil, apperrors.NewDatabaseError("update spot", err)
	}
	s.cache.InvalidateSpotCache(ctx, spotID)
	return spot, nil
}

func (s *SpotService) Delete(ctx context.Context, userID, spotID string) error {
	if _, err := s.mustOwn(ctx, userID, spotID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, spotID); err != nil {
		return apperrors.NewDatabaseError("delete spot", err)
	}
	s.cache.InvalidateSpotCache(ctx, spotID)
	s.log.Info().Str("spot_id", spotID).Msg("spot deleted")
	return nil
}

// List returns spots matching the filter. Radius filtering runs in memory
// over the SQL result because spot coordinates can be absent.
func (s *SpotService) List(ctx context.Context, filter models.SpotFilter) ([]models.Spot, error) {
	spots, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list spots", err)
	}

	if filter.Latitude != nil && filter.Longitude != nil && filter.RadiusKm > 0 {
		filtered := make([]models.Spot, 0, len(spots))
		for _, spot := range spots {
			if !spot.HasCoordinates() {
				continue
			}
			if geo.WithinRadius(*filter.Latitude, *filter.Longitude,
				*spot.Latitude, *spot.Longitude, filter.RadiusKm*1000) {
				filtered = append(filtered, spot)
			}
		}
		spots = filtered
	}
	return spots, nil
}

func (s *SpotService) ListByCreator(ctx context.Context, userID string) ([]models.Spot, error) {
	spots, err := s.repo.ListByCreator(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list user spots", err)
	}
	return spots, nil
}

func (s *SpotService) AddFavorite(ctx context.Context, userID, spotID string) error {
	if err := s.repo.AddFavorite(ctx, userID, spotID); err != nil {
		if errors.Is(err, repository.ErrSpotNotFound) {
			return apperrors.NewSpotNotFoundError(spotID)
		}
		return apperrors.NewDatabaseError("add favorite", err)
	}
	s.cache.InvalidateUserCache(ctx, userID)
	return nil
}

func (s *SpotService) RemoveFavorite(ctx context.Context, userID, spotID string) error {
	if err := s.repo.RemoveFavorite(ctx, userID, spotID); err != nil {
		return apperrors.NewDatabaseError("remove favorite", err)
	}
	s.cache.InvalidateUserCache(ctx, userID)
	return nil
}

func (s *SpotService) ListFavorites(ctx context.Context, userID string) ([]models.Spot, error) {
	spots, err := s.repo.ListFavorites(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list favorites", err)
	}
	return spots, nil
}

// CandidateSpots returns the union of the user's created and favorited
// spots, deduplicated by ID with created spots first. This is the
// candidate set contest eligibility is evaluated over.
func (s *SpotService) CandidateSpots(ctx context.Context, userID string) ([]models.Spot, error) {
	created, err := s.repo.ListByCreator(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list user spots", err)
	}
	favorited, err := s.repo.ListFavorites(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list favorites", err)
	}

	seen := make(map[string]struct{}, len(created)+len(favorited))
	candidates := make([]models.Spot, 0, len(created)+len(favorited))
	for _, spot := range created {
		if _, ok := seen[spot.ID]; ok {
			continue
		}
		seen[spot.ID] = struct{}{}
		candidates = append(candidates, spot)
	}
	for _, spot := range favorited {
		if _, ok := seen[spot.ID]; ok {
			continue
		}
		seen[spot.ID] = struct{}{}
		candidates = append(candidates, spot)
	}
	return candidates, nil
}

func (s *SpotService) CreateComment(ctx context.Context, userID, spotID string, create models.CommentCreate) (*models.Comment, error) {
	if _, err := s.GetByID(ctx, spotID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ID:        uuid.NewString(),
		SpotID:    spotID,
		AuthorID:  userID,
		Body:      create.Body,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, apperrors.NewDatabaseError("create comment", err)
	}
	s.cache.Delete(ctx, fmt.Sprintf("spot_comments:%s", spotID))
	return comment, nil
}

func (s *SpotService) ListComments(ctx context.Context, spotID string) ([]models.Comment, error) {
	comments, err := s.repo.ListComments(ctx, spotID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list comments", err)
	}
	return comments, nil
}

// DeleteComment removes a comment. Allowed for the comment author and
// for the owner of the spot it is posted on.
func (s *SpotService) DeleteComment(ctx context.Context, userID, commentID string) error {
	comment, err := s.repo.GetComment(ctx, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return apperrors.NewNotFoundError("comment", commentID)
		}
		return apperrors.NewDatabaseError("get comment", err)
	}

	if comment.AuthorID != userID {
		spot, err := s.repo.GetByID(ctx, comment.SpotID)
		if err != nil {
			return apperrors.NewDatabaseError("get spot", err)
		}
		if spot.CreatedBy != userID {
			return apperrors.NewForbiddenError("not the comment author or spot owner")
		}
	}

	if err := s.repo.DeleteComment(ctx, commentID); err != nil {
		return apperrors.NewDatabaseError("delete comment", err)
	}
	s.cache.Delete(ctx, fmt.Sprintf("spot_comments:%s", comment.SpotID))
	return nil
}

func (s *SpotService) mustOwn(ctx context.Context, userID, spotID string) (*models.Spot, error) {
	spot, err := s.repo.GetByID(ctx, spotID)
	if err != nil {
		if errors.Is(err, repository.ErrSpotNotFound) {
			return nil, apperrors.NewSpotNotFoundError(spotID)
		}
		return nil, apperrors.NewDatabaseError("get spot", err)
	}
	if spot.CreatedBy != userID {
		return nil, apperrors.New(apperrors.ErrCodeNotOwner, "spot belongs to another user").
			WithDetail("spot_id", spotID)
	}
	return spot, nil
}

func validateSpotTypes(types []string) error {
	if len(types) == 0 {
		return apperrors.NewValidationError("spot_type", "at least one spot type is required")
	}
	for _, t := range types {
		if !validation.IsValidSpotType(t) {
			return apperrors.NewValidationError("spot_type", "unknown spot type: "+t)
		}
	}
	return nil
}
