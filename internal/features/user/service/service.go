package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"spothop-backend/internal/common/cache"
	apperrors "spothop-backend/internal/common/errors"
	"spothop-backend/internal/common/logger"
	"spothop-backend/internal/common/validation"
	"spothop-backend/internal/features/user/models"
	"spothop-backend/internal/features/user/repository"
)

// UserService manages profiles and the social graph.
type UserService struct {
	repo    repository.UserRepository
	cache   cache.Cache
	userTTL time.Duration
	log     zerolog.Logger
}

func NewUserService(repo repository.UserRepository, cacheService cache.Cache, userTTL time.Duration) *UserService {
	return &UserService{
		repo:    repo,
		cache:   cacheService,
		userTTL: userTTL,
		log:     logger.Component("user_service"),
	}
}

// GetOrCreate returns the profile for an authenticated subject, creating
// the row on first sight. The display name for a fresh profile is derived
// from the email local part until the user sets one.
func (s *UserService) GetOrCreate(ctx context.Context, userID, email string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, apperrors.NewDatabaseError("get user", err)
	}

	now := time.Now().UTC()
	user = &models.User{
		ID:          userID,
		Email:       email,
		DisplayName: displayNameFromEmail(email),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Upsert(ctx, user); err != nil {
		return nil, apperrors.NewDatabaseError("create user", err)
	}
	s.log.Info().Str("user_id", userID).Msg("created user profile")
	return user, nil
}

// GetByID returns a profile, served from cache when possible.
func (s *UserService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	cacheKey := fmt.Sprintf("user:%s", userID)

	var user models.User
	err := s.cache.GetOrSet(ctx, cacheKey, &user, s.userTTL, func() (interface{}, error) {
		u, err := s.repo.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return u, nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeUserNotFound, "user not found")
		}
		return nil, apperrors.NewDatabaseError("get user", err)
	}
	return &user, nil
}

// UpdateProfile applies a partial update to the caller's own profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeUserNotFound, "user not found")
		}
		return nil, apperrors.NewDatabaseError("get user", err)
	}

	if update.DisplayName != nil {
		if err := validation.ValidateDisplayName(*update.DisplayName); err != nil {
			return nil, apperrors.NewValidationError("display_name", err.Error())
		}
		user.DisplayName = *update.DisplayName
	}
	if update.RiderType != nil {
		if *update.RiderType != "" && !validation.IsValidRiderType(*update.RiderType) {
			return nil, apperrors.NewValidationError("rider_type", "unknown rider type")
		}
		user.RiderType = *update.RiderType
	}
	if update.AvatarURL != nil {
		user.AvatarURL = *update.AvatarURL
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, apperrors.NewDatabaseError("update user", err)
	}
	s.cache.InvalidateUserCache(ctx, userID)
	return user, nil
}

// Follow subscribes the caller to another user's activity.
func (s *UserService) Follow(ctx context.Context, followerID, followedID string) error {
	if followerID == followedID {
		return apperrors.NewValidationError("followed_id", "cannot follow yourself")
	}
	if err := s.repo.AddFollow(ctx, followerID, followedID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return apperrors.New(apperrors.ErrCodeUserNotFound, "user not found")
		}
		return apperrors.NewDatabaseError("add follow", err)
	}
	return nil
}

// Unfollow removes a follow. Removing a non-existent follow is a no-op.
func (s *UserService) Unfollow(ctx context.Context, followerID, followedID string) error {
	if err := s.repo.RemoveFollow(ctx, followerID, followedID); err != nil {
		return apperrors.NewDatabaseError("remove follow", err)
	}
	return nil
}

func (s *UserService) ListFollowers(ctx context.Context, userID string) ([]models.User, error) {
	users, err := s.repo.ListFollowers(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list followers", err)
	}
	return users, nil
}

func (s *UserService) ListFollowing(ctx context.Context, userID string) ([]models.User, error) {
	users, err := s.repo.ListFollowing(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list following", err)
	}
	return users, nil
}

func (s *UserService) IsFollowing(ctx context.Context, followerID, followedID string) (bool, error) {
	following, err := s.repo.IsFollowing(ctx, followerID, followedID)
	if err != nil {
		return false, apperrors.NewDatabaseError("check follow", err)
	}
	return following, nil
}

func displayNameFromEmail(email string) string {
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			return email[:i]
		}
	}
	if email == "" {
		return "skater"
	}
	return email
}
