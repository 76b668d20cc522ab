package repository

import (
	"context"
	"errors"

	"spothop-backend/internal/features/user/models"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository is the persistence port for profiles and follows.
type UserRepository interface {
	Upsert(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error

	AddFollow(ctx context.Context, followerID, followedID string) error
	RemoveFollow(ctx context.Context, followerID, followedID string) error
	ListFollowers(ctx context.Context, userID string) ([]models.User, error)
	ListFollowing(ctx context.Context, userID string) ([]models.User, error)
	IsFollowing(ctx context.Context, followerID, followedID string) (bool, error)
}
