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
	"spothop-backend/internal/features/contest/eligibility"
	"spothop-backend/internal/features/contest/models"
	"spothop-backend/internal/features/contest/repository"
	mediamodels "spothop-backend/internal/features/media/models"
	mediarepo "spothop-backend/internal/features/media/repository"
	spotmodels "spothop-backend/internal/features/spot/models"
)

// SpotProvider supplies the candidate spot sets eligibility is computed over.
type SpotProvider interface {
	CandidateSpots(ctx context.Context, userID string) ([]spotmodels.Spot, error)
	GetByID(ctx context.Context, spotID string) (*spotmodels.Spot, error)
}

// ContestService manages the contest lifecycle, eligibility queries,
// submissions and voting.
type ContestService struct {
	repo       repository.ContestRepository
	mediaRepo  mediarepo.MediaRepository
	spots      SpotProvider
	cache      cache.Cache
	contestTTL time.Duration
	log        zerolog.Logger
}

func NewContestService(repo repository.ContestRepository, mediaRepo mediarepo.MediaRepository, spots SpotProvider, cacheService cache.Cache, contestTTL time.Duration) *ContestService {
	return &ContestService{
		repo:       repo,
		mediaRepo:  mediaRepo,
		spots:      spots,
		cache:      cacheService,
		contestTTL: contestTTL,
		log:        logger.Component("contest_service"),
	}
}

// Create makes a new contest in draft status.
func (s *ContestService) Create(ctx context.Context, adminID string, create models.ContestCreate) (*models.Contest, error) {
	if !create.EndsAt.After(create.StartsAt) {
		return nil, apperrors.NewValidationError("ends_at", "must be after starts_at")
	}
	if err := create.Criteria.Validate(); err != nil {
		return nil, apperrors.NewValidationError("criteria", err.Error())
	}

	now := time.Now().UTC()
	contest := &models.Contest{
		ID:          uuid.NewString(),
		CreatedBy:   adminID,
		Title:       create.Title,
		Description: create.Description,
		StartsAt:    create.StartsAt,
		EndsAt:      create.EndsAt,
		Status:      models.ContestStatusDraft,
		VotingType:  create.VotingType,
		Criteria:    create.Criteria,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, contest); err != nil {
		return nil, apperrors.NewDatabaseError("create contest", err)
	}
	s.log.Info().Str("contest_id", contest.ID).Str("admin_id", adminID).Msg("contest created")
	return contest, nil
}

// Update edits a contest. Criteria changes are only allowed while the
// contest is still a draft; entries submitted against one rule-set must
// not be invalidated by another.
func (s *ContestService) Update(ctx context.Context, contestID string, update models.ContestUpdate) (*models.Contest, error) {
	contest, err := s.getFromRepo(ctx, contestID)
	if err != nil {
		return nil, err
	}

	if update.Criteria != nil && contest.Status != models.ContestStatusDraft {
		return nil, apperrors.NewForbiddenError("criteria can only change while the contest is a draft")
	}

	if update.Title != nil {
		contest.Title = *update.Title
	}
	if update.Description != nil {
		contest.Description = *update.Description
	}
	if update.StartsAt != nil {
		contest.StartsAt = *update.StartsAt
	}
	if update.EndsAt != nil {
		contest.EndsAt = *update.EndsAt
	}
	if !contest.EndsAt.After(contest.StartsAt) {
		return nil, apperrors.NewValidationError("ends_at", "must be after starts_at")
	}
	if update.VotingType != nil {
		contest.VotingType = *update.VotingType
	}
	if update.Criteria != nil {
		if err := update.Criteria.Validate(); err != nil {
			return nil, apperrors.NewValidationError("criteria", err.Error())
		}
		contest.Criteria = *update.Criteria
	}
	contest.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, contest); err != nil {
		return nil, apperrors.NewDatabaseError("update contest", err)
	}
	s.cache.InvalidateContestCache(ctx, contestID)
	return contest, nil
}

// Transition moves a contest along its forward-only lifecycle.
func (s *ContestService) Transition(ctx context.Context, contestID string, next models.ContestStatus) (*models.Contest, error) {
	contest, err := s.getFromRepo(ctx, contestID)
	if err != nil {
		return nil, err
	}
	if !contest.Status.CanTransitionTo(next) {
		return nil, apperrors.New(apperrors.ErrCodeConflict,
			fmt.Sprintf("cannot transition from %s to %s", contest.Status, next))
	}

	contest.Status = next
	contest.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, contest); err != nil {
		return nil, apperrors.NewDatabaseError("update contest", err)
	}
	s.cache.InvalidateContestCache(ctx, contestID)
	s.log.Info().
		Str("contest_id", contestID).
		Str("status", string(next)).
		Msg("contest status changed")
	return contest, nil
}

// Delete removes a draft contest. Contests past draft keep their history.
func (s *ContestService) Delete(ctx context.Context, contestID string) error {
	contest, err := s.getFromRepo(ctx, contestID)
	if err != nil {
		return err
	}
	if contest.Status != models.ContestStatusDraft {
		return apperrors.NewForbiddenError("only draft contests can be deleted")
	}
	if err := s.repo.Delete(ctx, contestID); err != nil {
		return apperrors.NewDatabaseError("delete contest", err)
	}
	s.cache.InvalidateContestCache(ctx, contestID)
	return nil
}

// GetByID returns a contest, served from cache when possible.
func (s *ContestService) GetByID(ctx context.Context, contestID string) (*models.Contest, error) {
	cacheKey := fmt.Sprintf("contest:%s", contestID)

	var contest models.Contest
	err := s.cache.GetOrSet(ctx, cacheKey, &contest, s.contestTTL, func() (interface{}, error) {
		c, err := s.repo.GetByID(ctx, contestID)
		if err != nil {
			return nil, err
		}
		return c, nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrContestNotFound) {
			return nil, apperrors.NewContestNotFoundError(contestID)
		}
		return nil, apperrors.NewDatabaseError("get contest", err)
	}
	return &contest, nil
}

func (s *ContestService) List(ctx context.Context, status models.ContestStatus, limit, offset int) ([]models.Contest, error) {
	contests, err := s.repo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list contests", err)
	}
	return contests, nil
}

// ListActive returns contests currently accepting submissions or votes.
func (s *ContestService) ListActive(ctx context.Context) ([]models.Contest, error) {
	var contests []models.Contest
	err := s.cache.GetOrSet(ctx, "active_contests", &contests, s.contestTTL, func() (interface{}, error) {
		return s.repo.ListActive(ctx)
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("list active contests", err)
	}
	return contests, nil
}

// EligibleSpots evaluates the contest criteria over the user's candidate
// spots (created plus favorited) and their own media.
func (s *ContestService) EligibleSpots(ctx context.Context, contestID, userID string) ([]spotmodels.Spot, error) {
	contest, err := s.GetByID(ctx, contestID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.spots.CandidateSpots(ctx, userID)
	if err != nil {
		return nil, err
	}
	media, err := s.mediaRepo.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list author media", err)
	}

	evaluator := eligibility.ForContest(contest)
	return evaluator.EligibleSpots(candidates, media, userID, time.Now().UTC()), nil
}

// EligibleMedia returns which of the user's media on one spot can represent
// it in the contest.
func (s *ContestService) EligibleMedia(ctx context.Context, contestID, spotID, userID string) ([]mediamodels.MediaItem, error) {
	contest, err := s.GetByID(ctx, contestID)
	if err != nil {
		return nil, err
	}
	if _, err := s.spots.GetByID(ctx, spotID); err != nil {
		return nil, err
	}

	spotMedia, err := s.mediaRepo.ListBySpot(ctx, spotID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list spot media", err)
	}

	evaluator := eligibility.ForContest(contest)
	return evaluator.EligibleMedia(spotMedia, userID, time.Now().UTC()), nil
}

// SubmitEntry validates and records a submission. Eligibility is
// re-evaluated server-side; the client's own filtering is advisory.
func (s *ContestService) SubmitEntry(ctx context.Context, contestID, userID string, create models.EntryCreate) (*models.Entry, error) {
	contest, err := s.GetByID(ctx, contestID)
	if err != nil {
		return nil, err
	}
	if contest.Status != models.ContestStatusActive {
		return nil, apperrors.New(apperrors.ErrCodeContestClosed, "contest is not accepting submissions")
	}

	count, err := s.repo.CountUserEntries(ctx, contestID, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("count entries", err)
	}
	if count >= contest.Criteria.EntryLimit() {
		return nil, apperrors.New(apperrors.ErrCodeEntryLimit, "entry limit reached for this contest").
			WithDetail("limit", contest.Criteria.EntryLimit())
	}

	duplicate, err := s.repo.HasEntryForSpot(ctx, contestID, userID, create.SpotID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("check entry", err)
	}
	if duplicate {
		return nil, apperrors.New(apperrors.ErrCodeAlreadySubmitted, "this spot has already been submitted").
			WithDetail("spot_id", create.SpotID)
	}

	media, err := s.mediaRepo.GetByID(ctx, create.MediaID)
	if err != nil {
		if errors.Is(err, mediarepo.ErrMediaNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeMediaNotFound, "media item not found")
		}
		return nil, apperrors.NewDatabaseError("get media item", err)
	}
	if media.SpotID != create.SpotID {
		return nil, apperrors.NewValidationError("media_id", "media item belongs to a different spot")
	}
	if media.AuthorID != userID {
		return nil, apperrors.NewNotEligibleError("media item was uploaded by another user")
	}

	now := time.Now().UTC()
	evaluator := eligibility.ForContest(contest)
	if !evaluator.MediaQualifies(media, now) {
		return nil, apperrors.NewNotEligibleError("media item does not satisfy the contest criteria")
	}

	candidates, err := s.spots.CandidateSpots(ctx, userID)
	if err != nil {
		return nil, err
	}
	userMedia, err := s.mediaRepo.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list author media", err)
	}
	if !containsSpot(evaluator.EligibleSpots(candidates, userMedia, userID, now), create.SpotID) {
		return nil, apperrors.NewNotEligibleError("spot does not satisfy the contest criteria")
	}

	entry := &models.Entry{
		ID:        uuid.NewString(),
		ContestID: contestID,
		UserID:    userID,
		SpotID:    create.SpotID,
		MediaID:   create.MediaID,
		MediaType: string(media.Type),
		CreatedAt: now,
	}
	if err := s.repo.CreateEntry(ctx, entry); err != nil {
		return nil, apperrors.NewDatabaseError("create entry", err)
	}

	s.cache.Delete(ctx, fmt.Sprintf("contest_entries:%s", contestID))
	s.log.Info().
		Str("contest_id", contestID).
		Str("user_id", userID).
		Str("spot_id", create.SpotID).
		Msg("entry submitted")
	return entry, nil
}

// WithdrawEntry removes one of the caller's own entries while the contest
// is still accepting submissions.
func (s *ContestService) WithdrawEntry(ctx context.Context, contestID, entryID, userID string) error {
	contest, err := s.GetByID(ctx, contestID)
	if err != nil {
		return err
	}
	if contest.Status != models.ContestStatusActive {
		return apperrors.New(apperrors.ErrCodeContestClosed, "contest is no longer accepting changes")
	}

	entry, err := s.repo.GetEntry(ctx, entryID)
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return apperrors.NewNotFoundError("entry", entryID)
		}
		return apperrors.NewDatabaseError("get entry", err)
	}
	if entry.ContestID != contestID {
		return apperrors.NewNotFoundError("entry", entryID)
	}
	if entry.UserID != userID {
		return apperrors.NewForbiddenError("not the entry owner")
	}

	if err := s.repo.DeleteEntry(ctx, entryID); err != nil {
		return apperrors.NewDatabaseError("delete entry", err)
	}
	s.cache.Delete(ctx, fmt.Sprintf("contest_entries:%s", contestID))
	return nil
}

func (s *ContestService) ListEntries(ctx context.Context, contestID string) ([]models.Entry, error) {
	cacheKey := fmt.Sprintf("contest_entries:%s", contestID)

	var entries []models.Entry
	err := s.cache.GetOrSet(ctx, cacheKey, &entries, s.contestTTL, func() (interface{}, error) {
		return s.repo.ListEntries(ctx, contestID)
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("list entries", err)
	}
	return entries, nil
}

// ListMyEntries returns the caller's own entries in one contest.
func (s *ContestService) ListMyEntries(ctx context.Context, contestID, userID string) ([]models.Entry, error) {
	entries, err := s.repo.ListUserEntries(ctx, contestID, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list user entries", err)
	}
	return entries, nil
}

// Vote records one vote per user per contest. Public voting only, during
// the voting phase.
func (s *ContestService) Vote(ctx context.Context, contestID, entryID, voterID string) error {
	contest, err := s.GetByID(ctx, contestID)
	if err != nil {
		return err
	}
	if contest.VotingType != models.VotingTypePublic {
		return apperrors.NewForbiddenError("contest is not open to public voting")
	}
	if contest.Status != models.ContestStatusVoting {
		return apperrors.New(apperrors.ErrCodeContestClosed, "contest is not in the voting phase")
	}

	voted, err := s.repo.HasVoted(ctx, contestID, voterID)
	if err != nil {
		return apperrors.NewDatabaseError("check vote", err)
	}
	if voted {
		return apperrors.New(apperrors.ErrCodeAlreadyVoted, "already voted in this contest")
	}

	entry, err := s.repo.GetEntry(ctx, entryID)
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return apperrors.NewNotFoundError("entry", entryID)
		}
		return apperrors.NewDatabaseError("get entry", err)
	}
	if entry.ContestID != contestID {
		return apperrors.NewNotFoundError("entry", entryID)
	}
	if entry.UserID == voterID {
		return apperrors.NewForbiddenError("cannot vote for your own entry")
	}

	vote := &models.Vote{
		ContestID: contestID,
		EntryID:   entryID,
		VoterID:   voterID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateVote(ctx, vote); err != nil {
		if errors.Is(err, repository.ErrDuplicateVote) {
			return apperrors.New(apperrors.ErrCodeAlreadyVoted, "already voted in this contest")
		}
		return apperrors.NewDatabaseError("create vote", err)
	}
	s.cache.Delete(ctx, fmt.Sprintf("contest_winners:%s", contestID))
	return nil
}

// Winners returns the vote-ranked entries of a finished contest.
func (s *ContestService) Winners(ctx context.Context, contestID string, limit int) ([]models.Entry, error) {
	contest, err := s.GetByID(ctx, contestID)
	if err != nil {
		return nil, err
	}
	if contest.Status != models.ContestStatusFinished {
		return nil, apperrors.New(apperrors.ErrCodeConflict, "contest is not finished yet")
	}

	cacheKey := fmt.Sprintf("contest_winners:%s", contestID)
	var ranked []models.Entry
	err = s.cache.GetOrSet(ctx, cacheKey, &ranked, s.contestTTL, func() (interface{}, error) {
		return s.repo.ListEntriesWithVotes(ctx, contestID)
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("list winners", err)
	}

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

func (s *ContestService) getFromRepo(ctx context.Context, contestID string) (*models.Contest, error) {
	contest, err := s.repo.GetByID(ctx, contestID)
	if err != nil {
		if errors.Is(err, repository.ErrContestNotFound) {
			return nil, apperrors.NewContestNotFoundError(contestID)
		}
		return nil, apperrors.NewDatabaseError("get contest", err)
	}
	return contest, nil
}

func containsSpot(spots []spotmodels.Spot, spotID string) bool {
	for i := range spots {
		if spots[i].ID == spotID {
			return true
		}
	}
	return false
}
