package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "spothop-backend/internal/common/errors"
	"spothop-backend/internal/features/spot/models"
	"spothop-backend/internal/features/spot/repository"
)

type noopCache struct{}

func (noopCache) Get(ctx context.Context, key string, dest interface{}) error { return nil }
func (noopCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (noopCache) Delete(ctx context.Context, key string) error            { return nil }
func (noopCache) DeletePattern(ctx context.Context, pattern string) error { return nil }
func (noopCache) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, setter func() (interface{}, error)) error {
	value, err := setter()
	if err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}
func (noopCache) InvalidateSpotCache(ctx context.Context, spotID string) error       { return nil }
func (noopCache) InvalidateContestCache(ctx context.Context, contestID string) error { return nil }
func (noopCache) InvalidateUserCache(ctx context.Context, userID string) error       { return nil }

type fakeSpotRepo struct {
	spots     map[string]*models.Spot
	favorites map[string][]string // userID -> spotIDs in favorite order
	comments  map[string]*models.Comment
	created   []string // creation order
}

func newFakeSpotRepo() *fakeSpotRepo {
	return &fakeSpotRepo{
		spots:     make(map[string]*models.Spot),
		favorites: make(map[string][]string),
		comments:  make(map[string]*models.Comment),
	}
}

func (r *fakeSpotRepo) Create(ctx context.Context, spot *models.Spot) error {
	stored := *spot
	r.spots[spot.ID] = &stored
	r.created = append(r.created, spot.ID)
	return nil
}

func (r *fakeSpotRepo) GetByID(ctx context.Context, id string) (*models.Spot, error) {
	spot, ok := r.spots[id]
	if !ok {
		return nil, repository.ErrSpotNotFound
	}
	copied := *spot
	return &copied, nil
}

func (r *fakeSpotRepo) Update(ctx context.Context, spot *models.Spot) error {
	if _, ok := r.spots[spot.ID]; !ok {
		return repository.ErrSpotNotFound
	}
	stored := *spot
	r.spots[spot.ID] = &stored
	return nil
}

func (r *fakeSpotRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.spots[id]; !ok {
		return repository.ErrSpotNotFound
	}
	delete(r.spots, id)
	return nil
}

func (r *fakeSpotRepo) List(ctx context.Context, filter models.SpotFilter) ([]models.Spot, error) {
	out := make([]models.Spot, 0)
	for _, id := range r.created {
		if spot, ok := r.spots[id]; ok {
			out = append(out, *spot)
		}
	}
	return out, nil
}

func (r *fakeSpotRepo) ListByCreator(ctx context.Context, userID string) ([]models.Spot, error) {
	out := make([]models.Spot, 0)
	for _, id := range r.created {
		if spot, ok := r.spots[id]; ok && spot.CreatedBy == userID {
			out = append(out, *spot)
		}
	}
	return out, nil
}

func (r *fakeSpotRepo) AddFavorite(ctx context.Context, userID, spotID string) error {
	if _, ok := r.spots[spotID]; !ok {
		return repository.ErrSpotNotFound
	}
	for _, id := range r.favorites[userID] {
		if id == spotID {
			return nil
		}
	}
	r.favorites[userID] = append(r.favorites[userID], spotID)
	return nil
}

func (r *fakeSpotRepo) RemoveFavorite(ctx context.Context, userID, spotID string) error {
	ids := r.favorites[userID]
	for i, id := range ids {
		if id == spotID {
			r.favorites[userID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeSpotRepo) ListFavorites(ctx context.Context, userID string) ([]models.Spot, error) {
	out := make([]models.Spot, 0)
	for _, id := range r.favorites[userID] {
		if spot, ok := r.spots[id]; ok {
			out = append(out, *spot)
		}
	}
	return out, nil
}

func (r *fakeSpotRepo) IsFavorite(ctx context.Context, userID, spotID string) (bool, error) {
	for _, id := range r.favorites[userID] {
		if id == spotID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSpotRepo) CreateComment(ctx context.Context, comment *models.Comment) error {
	stored := *comment
	r.comments[comment.ID] = &stored
	return nil
}

func (r *fakeSpotRepo) GetComment(ctx context.Context, commentID string) (*models.Comment, error) {
	comment, ok := r.comments[commentID]
	if !ok {
		return nil, repository.ErrCommentNotFound
	}
	copied := *comment
	return &copied, nil
}

func (r *fakeSpotRepo) ListComments(ctx context.Context, spotID string) ([]models.Comment, error) {
	out := make([]models.Comment, 0)
	for _, c := range r.comments {
		if c.SpotID == spotID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeSpotRepo) DeleteComment(ctx context.Context, commentID string) error {
	if _, ok := r.comments[commentID]; !ok {
		return repository.ErrCommentNotFound
	}
	delete(r.comments, commentID)
	return nil
}

func newTestSpotService() (*SpotService, *fakeSpotRepo) {
	repo := newFakeSpotRepo()
	return NewSpotService(repo, noopCache{}, time.Minute), repo
}

func seedSpot(t *testing.T, svc *SpotService, userID, name string) *models.Spot {
	t.Helper()
	spot, err := svc.Create(context.Background(), userID, models.SpotCreate{
		Name:      name,
		SpotTypes: []string{"street"},
	})
	require.NoError(t, err)
	return spot
}

func TestCandidateSpotsUnionDedup(t *testing.T) {
	svc, repo := newTestSpotService()

	mine := seedSpot(t, svc, "user-1", "Courthouse Ledges")
	other := seedSpot(t, svc, "user-2", "River Rail")

	// favoriting one of my own spots must not duplicate it
	require.NoError(t, repo.AddFavorite(context.Background(), "user-1", mine.ID))
	require.NoError(t, repo.AddFavorite(context.Background(), "user-1", other.ID))

	candidates, err := svc.CandidateSpots(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	// created spots come first, then favorites of others' spots
	assert.Equal(t, mine.ID, candidates[0].ID)
	assert.Equal(t, other.ID, candidates[1].ID)
}

func TestCandidateSpotsEmptyWithoutSpots(t *testing.T) {
	svc, _ := newTestSpotService()

	candidates, err := svc.CandidateSpots(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestCreateValidatesSpotTypes(t *testing.T) {
	svc, _ := newTestSpotService()

	_, err := svc.Create(context.Background(), "user-1", models.SpotCreate{
		Name:      "Mystery Spot",
		SpotTypes: []string{"volcano"},
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestCreateRequiresPairedCoordinates(t *testing.T) {
	svc, _ := newTestSpotService()
	lat := 40.7

	_, err := svc.Create(context.Background(), "user-1", models.SpotCreate{
		Name:      "Half Located",
		SpotTypes: []string{"street"},
		Latitude:  &lat,
	})
	require.Error(t, err)
}

func TestUpdateOnlyByOwner(t *testing.T) {
	svc, _ := newTestSpotService()
	spot := seedSpot(t, svc, "user-1", "Courthouse Ledges")

	newName := "Renamed"
	_, err := svc.Update(context.Background(), "user-2", spot.ID, models.SpotUpdate{Name: &newName})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNotOwner, appErr.Code)

	updated, err := svc.Update(context.Background(), "user-1", spot.ID, models.SpotUpdate{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestDeleteCommentPermissions(t *testing.T) {
	svc, _ := newTestSpotService()
	spot := seedSpot(t, svc, "owner", "Courthouse Ledges")

	comment, err := svc.CreateComment(context.Background(), "commenter", spot.ID,
		models.CommentCreate{Body: "waxed the ledge last week"})
	require.NoError(t, err)

	t.Run("stranger cannot delete", func(t *testing.T) {
		err := svc.DeleteComment(context.Background(), "stranger", comment.ID)
		require.Error(t, err)
	})

	t.Run("spot owner can delete", func(t *testing.T) {
		require.NoError(t, svc.DeleteComment(context.Background(), "owner", comment.ID))
	})

	comment2, err := svc.CreateComment(context.Background(), "commenter", spot.ID,
		models.CommentCreate{Body: "security chills after 6pm"})
	require.NoError(t, err)

	t.Run("author can delete own comment", func(t *testing.T) {
		require.NoError(t, svc.DeleteComment(context.Background(), "commenter", comment2.ID))
	})
}

func TestListRadiusFilter(t *testing.T) {
	svc, repo := newTestSpotService()

	near := &models.Spot{ID: "near", CreatedBy: "u", Name: "Near", SpotTypes: []string{"street"}}
	nearLat, nearLng := 40.7130, -74.0060
	near.Latitude, near.Longitude = &nearLat, &nearLng

	far := &models.Spot{ID: "far", CreatedBy: "u", Name: "Far", SpotTypes: []string{"street"}}
	farLat, farLng := 34.0522, -118.2437
	far.Latitude, far.Longitude = &farLat, &farLng

	unlocated := &models.Spot{ID: "unlocated", CreatedBy: "u", Name: "Unknown", SpotTypes: []string{"street"}}

	for _, s := range []*models.Spot{near, far, unlocated} {
		require.NoError(t, repo.Create(context.Background(), s))
	}

	centerLat, centerLng := 40.7128, -74.0060
	spots, err := svc.List(context.Background(), models.SpotFilter{
		Latitude:  &centerLat,
		Longitude: &centerLng,
		RadiusKm:  10,
	})
	require.NoError(t, err)
	require.Len(t, spots, 1)
	assert.Equal(t, "near", spots[0].ID)
}
