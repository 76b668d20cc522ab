package repository

import (
	"context"
	"errors"

	"spothop-backend/internal/features/contest/models"
)

var (
	ErrContestNotFound = errors.New("contest not found")
	ErrEntryNotFound   = errors.New("entry not found")
	ErrDuplicateVote   = errors.New("vote already recorded")
)

// ContestRepository is the persistence port for contests, entries and votes.
type ContestRepository interface {
	Create(ctx context.Context, contest *models.Contest) error
	GetByID(ctx context.Context, id string) (*models.Contest, error)
	Update(ctx context.Context, contest *models.Contest) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, status models.ContestStatus, limit, offset int) ([]models.Contest, error)
	ListActive(ctx context.Context) ([]models.Contest, error)

	CreateEntry(ctx context.Context, entry *models.Entry) error
	GetEntry(ctx context.Context, entryID string) (*models.Entry, error)
	DeleteEntry(ctx context.Context, entryID string) error
	ListEntries(ctx context.Context, contestID string) ([]models.Entry, error)
	ListUserEntries(ctx context.Context, contestID, userID string) ([]models.Entry, error)
	CountUserEntries(ctx context.Context, contestID, userID string) (int, error)
	HasEntryForSpot(ctx context.Context, contestID, userID, spotID string) (bool, error)

	CreateVote(ctx context.Context, vote *models.Vote) error
	HasVoted(ctx context.Context, contestID, voterID string) (bool, error)
	ListEntriesWithVotes(ctx context.Context, contestID string) ([]models.Entry, error)
}
