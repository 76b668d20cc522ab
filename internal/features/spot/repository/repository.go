package repository

import (
	"context"
	"errors"

	"spothop-backend/internal/features/spot/models"
)

var (
	ErrSpotNotFound    = errors.New("spot not found")
	ErrCommentNotFound = errors.New("comment not found")
)

// SpotRepository is the persistence port for spots, favorites and comments.
type SpotRepository interface {
	Create(ctx context.Context, spot *models.Spot) error
	GetByID(ctx context.Context, id string) (*models.Spot, error)
	Update(ctx context.Context, spot *models.Spot) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter models.SpotFilter) ([]models.Spot, error)
	ListByCreator(ctx context.Context, userID string) ([]models.Spot, error)

	AddFavorite(ctx context.Context, userID, spotID string) error
	RemoveFavorite(ctx context.Context, userID, spotID string) error
	ListFavorites(ctx context.Context, userID string) ([]models.Spot, error)
	IsFavorite(ctx context.Context, userID, spotID string) (bool, error)

	CreateComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, commentID string) (*models.Comment, error)
	ListComments(ctx context.Context, spotID string) ([]models.Comment, error)
	DeleteComment(ctx context.Context, commentID string) error
}
