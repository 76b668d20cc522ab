package eligibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contestmodels "spothop-backend/internal/features/contest/models"
	mediamodels "spothop-backend/internal/features/media/models"
	spotmodels "spothop-backend/internal/features/spot/models"
	"spothop-backend/internal/utils/geo"
)

var (
	testNow          = time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	testContestStart = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
)

func boolPtr(b bool) *bool          { return &b }
func floatPtr(f float64) *float64   { return &f }
func timePtr(t time.Time) *time.Time { return &t }

// testSpot returns a spot that passes an empty criteria set once it has a
// qualifying video.
func testSpot(id, createdBy string) spotmodels.Spot {
	return spotmodels.Spot{
		ID:         id,
		CreatedBy:  createdBy,
		Name:       "spot " + id,
		SpotTypes:  []string{"street"},
		Difficulty: "intermediate",
		IsLit:      boolPtr(false),
		Latitude:   floatPtr(40.7128),
		Longitude:  floatPtr(-74.0060),
		CreatedAt:  testContestStart.Add(24 * time.Hour),
	}
}

func testVideo(id, spotID, authorID string) mediamodels.MediaItem {
	return mediamodels.MediaItem{
		ID:        id,
		SpotID:    spotID,
		AuthorID:  authorID,
		Type:      mediamodels.MediaTypeVideo,
		URL:       "https://cdn.example.com/" + id + ".mp4",
		CreatedAt: testContestStart.Add(48 * time.Hour),
	}
}

func testPhoto(id, spotID, authorID string) mediamodels.MediaItem {
	m := testVideo(id, spotID, authorID)
	m.Type = mediamodels.MediaTypePhoto
	m.URL = "https://cdn.example.com/" + id + ".jpg"
	return m
}

func eligibleIDs(spots []spotmodels.Spot) []string {
	ids := make([]string, 0, len(spots))
	for _, s := range spots {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestEligibleSpots_EmptyCriteriaIsPermissive(t *testing.T) {
	// Empty criteria only require one qualifying video per spot.
	spots := []spotmodels.Spot{testSpot("s1", "u1"), testSpot("s2", "u2"), testSpot("s3", "u1")}
	media := []mediamodels.MediaItem{
		testVideo("m1", "s1", "u1"),
		testVideo("m2", "s3", "u1"),
		testPhoto("m3", "s2", "u1"), // photo does not qualify under the video default
	}

	e := New(&contestmodels.Criteria{}, testContestStart)
	got := e.EligibleSpots(spots, media, "u1", testNow)

	assert.Equal(t, []string{"s1", "s3"}, eligibleIDs(got))
}

func TestEligibleSpots_Deterministic(t *testing.T) {
	// Repeated calls with fixed inputs return identical results.
	spots := []spotmodels.Spot{testSpot("s1", "u1"), testSpot("s2", "u1")}
	media := []mediamodels.MediaItem{testVideo("m1", "s1", "u1")}

	e := New(&contestmodels.Criteria{AllowedDifficulties: []string{"intermediate"}}, testContestStart)

	first := e.EligibleSpots(spots, media, "u1", testNow)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, e.EligibleSpots(spots, media, "u1", testNow))
	}
}

func TestEligibleSpots_DoesNotMutateInputs(t *testing.T) {
	spots := []spotmodels.Spot{testSpot("s1", "u1"), testSpot("s2", "u2")}
	media := []mediamodels.MediaItem{testVideo("m1", "s1", "u1")}
	spotsCopy := make([]spotmodels.Spot, len(spots))
	copy(spotsCopy, spots)

	e := New(&contestmodels.Criteria{}, testContestStart)
	_ = e.EligibleSpots(spots, media, "u1", testNow)

	assert.Equal(t, spotsCopy, spots)
}

func TestEligibleSpots_HardMediaGate(t *testing.T) {
	// A spot with zero qualifying media is never eligible, even when
	// every other criterion is satisfied.
	spot := testSpot("s1", "u1")
	criteria := &contestmodels.Criteria{
		AllowedSpotTypes:    []string{"street"},
		AllowedDifficulties: []string{"intermediate"},
	}

	e := New(criteria, testContestStart)
	got := e.EligibleSpots([]spotmodels.Spot{spot}, nil, "u1", testNow)
	assert.Empty(t, got)
}

func TestEligibleSpots_RequiredMediaTypePhoto(t *testing.T) {
	// Scenario B: contest requires photos, spot only has a video.
	spot := testSpot("s1", "u1")
	media := []mediamodels.MediaItem{testVideo("m1", "s1", "u1")}
	criteria := &contestmodels.Criteria{
		RequiredMediaTypes: []mediamodels.MediaType{mediamodels.MediaTypePhoto},
	}

	e := New(criteria, testContestStart)
	assert.Empty(t, e.EligibleSpots([]spotmodels.Spot{spot}, media, "u1", testNow))

	// Adding one photo flips the result.
	media = append(media, testPhoto("m2", "s1", "u1"))
	assert.Equal(t, []string{"s1"}, eligibleIDs(e.EligibleSpots([]spotmodels.Spot{spot}, media, "u1", testNow)))
}

func TestEligibleSpots_IsLitStrictEquality(t *testing.T) {
	// Scenario A: allowed_is_lit=true excludes a spot with is_lit=false.
	spot := testSpot("s1", "u1") // is_lit false
	media := []mediamodels.MediaItem{testVideo("m1", "s1", "u1")}
	criteria := &contestmodels.Criteria{AllowedIsLit: boolPtr(true)}

	e := New(criteria, testContestStart)
	assert.Empty(t, e.EligibleSpots([]spotmodels.Spot{spot}, media, "u1", testNow))

	// A spot with no lit flag at all is also excluded while the rule is active.
	unflagged := testSpot("s1", "u1")
	unflagged.IsLit = nil
	assert.Empty(t, e.EligibleSpots([]spotmodels.Spot{unflagged}, media, "u1", testNow))

	lit := testSpot("s1", "u1")
	lit.IsLit = boolPtr(true)
	assert.Equal(t, []string{"s1"}, eligibleIDs(e.EligibleSpots([]spotmodels.Spot{lit}, media, "u1", testNow)))
}

func TestEligibleSpots_KickoutRisk(t *testing.T) {
	media := []mediamodels.MediaItem{testVideo("m1", "s1", "u1")}
	criteria := &contestmodels.Criteria{AllowedKickoutRiskMax: floatPtr(5)}
	e := New(criteria, testContestStart)

	tests := []struct {
		name     string
		risk     float64
		eligible bool
	}{
		{"below max", 3, true},
		{"exactly max", 5, true},
		{"above max", 6, false},
		// An unrated spot (risk 0) fails while the rule is active.
		// The rated scale starts at 1, so 0 always means "no rating".
		{"unrated", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spot := testSpot("s1", "u1")
			spot.KickoutRisk = tt.risk
			got := e.EligibleSpots([]spotmodels.Spot{spot}, media, "u1", testNow)
			assert.Equal(t, tt.eligible, len(got) == 1)
		})
	}
}

func TestEligibleSpots_GeofenceRadiusBoundary(t *testing.T) {
	// A spot exactly on the radius passes; slightly past it fails.
	// One degree of latitude from the center is ~111.19 km on the sphere.
	center := testSpot("center", "u1")
	onEdge := testSpot("edge", "u1")
	onEdge.Latitude = floatPtr(*center.Latitude + 1)

	media := []mediamodels.MediaItem{
		testVideo("m1", "center", "u1"),
		testVideo("m2", "edge", "u1"),
	}

	makeEval := func(radiusKm float64) *Evaluator {
		return New(&contestmodels.Criteria{
			LocationLatitude:  center.Latitude,
			LocationLongitude: center.Longitude,
			LocationRadiusKm:  floatPtr(radiusKm),
		}, testContestStart)
	}

	spots := []spotmodels.Spot{center, onEdge}

	// Radius just past one degree of latitude: both pass.
	got := makeEval(111.2).EligibleSpots(spots, media, "u1", testNow)
	assert.Equal(t, []string{"center", "edge"}, eligibleIDs(got))

	// Radius just under: the edge spot falls out.
	got = makeEval(111.1).EligibleSpots(spots, media, "u1", testNow)
	assert.Equal(t, []string{"center"}, eligibleIDs(got))
}

func TestEligibleSpots_GeofenceExactBoundary(t *testing.T) {
	// A spot exactly at radius_km*1000 meters passes (inclusive);
	// one meter further fails.
	center := testSpot("center", "u1")
	edge := testSpot("edge", "u1")
	edge.Latitude = floatPtr(*center.Latitude + 0.05)

	exact := geo.DistanceMeters(*edge.Latitude, *edge.Longitude, *center.Latitude, *center.Longitude)
	media := []mediamodels.MediaItem{testVideo("m1", "edge", "u1")}

	makeEval := func(radiusMeters float64) *Evaluator {
		return New(&contestmodels.Criteria{
			LocationLatitude:  center.Latitude,
			LocationLongitude: center.Longitude,
			LocationRadiusKm:  floatPtr(radiusMeters / 1000),
		}, testContestStart)
	}

	// A millimeter of slack absorbs the float round-trip through km.
	got := makeEval(exact+0.001).EligibleSpots([]spotmodels.Spot{edge}, media, "u1", testNow)
	assert.Equal(t, []string{"edge"}, eligibleIDs(got), "spot on the radius must pass")

	got = makeEval(exact-1).EligibleSpots([]spotmodels.Spot{edge}, media, "u1", testNow)
	assert.Empty(t, got, "spot one meter past the radius must fail")
}

func TestEligibleSpots_GeofenceScenarioC(t *testing.T) {
	// Scenario C: spot within 10 km of the NYC center is included.
	spot := testSpot("s1", "u1")
	spot.Latitude = floatPtr(40.73)
	spot.Longitude = floatPtr(-73.99)
	media := []mediamodels.MediaItem{testVideo("m1", "s1", "u1")}

	criteria := &contestmodels.Criteria{
		LocationLatitude:  floatPtr(40.7128),
		LocationLongitude: floatPtr(-74.0060),
		LocationRadiusKm:  floatPtr(10),
	}

	e := New(criteria, testContestStart)
	assert.Equal(t, []string{"s1"}, eligibleIDs(e.EligibleSpots([]spotmodels.Spot{spot}, media, "u1", testNow)))
}

func TestEligibleSpots_GeofenceMissingCoordinatesExcludes(t *testing.T) {
	spot := testSpot("s1", "u1")
	spot.Latitude = nil
	spot.Longitude = nil
	media := []mediamodels.MediaItem{testVideo("m1", "s1", "u1")}

	criteria := &contestmodels.Criteria{
		LocationLatitude:  floatPtr(40.7128),
		LocationLongitude: floatPtr(-74.0060),
		LocationRadiusKm:  floatPtr(10),
	}

	e := New(criteria, testContestStart)
	assert.Empty(t, e.EligibleSpots([]spotmodels.Spot{spot}, media, "u1", testNow))
}

func TestEligibleSpots_PartialGeofenceIsSkipped(t *testing.T) {
	// A radius without a center is tolerated: the rule is simply inactive.
	spot := testSpot("s1", "u1")
	spot.Latitude = nil
	spot.Longitude = nil
	media := []mediamodels.MediaItem{testVideo("m1", "s1", "u1")}

	criteria := &contestmodels.Criteria{LocationRadiusKm: floatPtr(10)}

	e := New(criteria, testContestStart)
	assert.Equal(t, []string{"s1"}, eligibleIDs(e.EligibleSpots([]spotmodels.Spot{spot}, media, "u1", testNow)))
}

func TestEligibleSpots_SpotTimeFrameScenarioD(t *testing.T) {
	// Scenario D: last_30_days with now = 2025-06-30.
	now := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	old := testSpot("old", "u1")
	old.CreatedAt = time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	recent := testSpot("recent", "u1")
	recent.CreatedAt = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	media := []mediamodels.MediaItem{
		testVideo("m1", "old", "u1"),
		testVideo("m2", "recent", "u1"),
	}

	criteria := &contestmodels.Criteria{SpotCreationTimeFrame: contestmodels.TimeFrameLast30Days}
	e := New(criteria, testContestStart)

	got := e.EligibleSpots([]spotmodels.Spot{old, recent}, media, "u1", now)
	assert.Equal(t, []string{"recent"}, eligibleIDs(got))
}

func TestEligibleSpots_TimeFrameBoundaryInclusive(t *testing.T) {
	// Exactly at the threshold passes; one millisecond earlier fails.
	threshold := testNow.Add(-30 * 24 * time.Hour)

	atThreshold := testSpot("at", "u1")
	atThreshold.CreatedAt = threshold
	justBefore := testSpot("before", "u1")
	justBefore.CreatedAt = threshold.Add(-time.Millisecond)

	media := []mediamodels.MediaItem{
		testVideo("m1", "at", "u1"),
		testVideo("m2", "before", "u1"),
	}

	criteria := &contestmodels.Criteria{SpotCreationTimeFrame: contestmodels.TimeFrameLast30Days}
	e := New(criteria, testContestStart)

	got := e.EligibleSpots([]spotmodels.Spot{atThreshold, justBefore}, media, "u1", testNow)
	assert.Equal(t, []string{"at"}, eligibleIDs(got))
}

func TestEligibleSpots_DuringCompetitionTimeFrame(t *testing.T) {
	before := testSpot("before", "u1")
	before.CreatedAt = testContestStart.Add(-time.Second)
	at := testSpot("at", "u1")
	at.CreatedAt = testContestStart

	media := []mediamodels.MediaItem{
		testVideo("m1", "before", "u1"),
		testVideo("m2", "at", "u1"),
	}

	criteria := &contestmodels.Criteria{SpotCreationTimeFrame: contestmodels.TimeFrameDuringCompetition}
	e := New(criteria, testContestStart)

	got := e.EligibleSpots([]spotmodels.Spot{before, at}, media, "u1", testNow)
	assert.Equal(t, []string{"at"}, eligibleIDs(got))
}

func TestEligibleSpots_UnknownTimeFrameTreatedAsAnytime(t *testing.T) {
	spot := testSpot("s1", "u1")
	spot.CreatedAt = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	media := []mediamodels.MediaItem{testVideo("m1", "s1", "u1")}

	criteria := &contestmodels.Criteria{SpotCreationTimeFrame: contestmodels.TimeFrame("next_week")}
	e := New(criteria, testContestStart)

	assert.Equal(t, []string{"s1"}, eligibleIDs(e.EligibleSpots([]spotmodels.Spot{spot}, media, "u1", testNow)))
}

func TestEligibleSpots_MediaTimeFrameGatesSpot(t *testing.T) {
	// The media time frame participates in the qualifying-media gate: a spot
	// whose only video predates the window has zero qualifying media.
	spot := testSpot("s1", "u1")
	staleVideo := testVideo("m1", "s1", "u1")
	staleVideo.CreatedAt = testNow.Add(-40 * 24 * time.Hour)

	criteria := &contestmodels.Criteria{MediaCreationTimeFrame: contestmodels.TimeFrameLast30Days}
	e := New(criteria, testContestStart)

	assert.Empty(t, e.EligibleSpots([]spotmodels.Spot{spot}, []mediamodels.MediaItem{staleVideo}, "u1", testNow))

	freshVideo := testVideo("m2", "s1", "u1")
	freshVideo.CreatedAt = testNow.Add(-24 * time.Hour)
	got := e.EligibleSpots([]spotmodels.Spot{spot}, []mediamodels.MediaItem{staleVideo, freshVideo}, "u1", testNow)
	assert.Equal(t, []string{"s1"}, eligibleIDs(got))
}

func TestEligibleSpots_CreatorMustBeCompetitor(t *testing.T) {
	// Scenario E: a favorited spot created by someone else is excluded.
	spot := testSpot("s1", "u2")
	media := []mediamodels.MediaItem{testVideo("m1", "s1", "u1")}

	criteria := &contestmodels.Criteria{RequireSpotCreatorIsCompetitor: true}
	e := New(criteria, testContestStart)

	assert.Empty(t, e.EligibleSpots([]spotmodels.Spot{spot}, media, "u1", testNow))

	own := testSpot("s2", "u1")
	media = append(media, testVideo("m2", "s2", "u1"))
	got := e.EligibleSpots([]spotmodels.Spot{spot, own}, media, "u1", testNow)
	assert.Equal(t, []string{"s2"}, eligibleIDs(got))
}

func TestEligibleSpots_SpecificSpot(t *testing.T) {
	spots := []spotmodels.Spot{testSpot("s1", "u1"), testSpot("s2", "u1")}
	media := []mediamodels.MediaItem{
		testVideo("m1", "s1", "u1"),
		testVideo("m2", "s2", "u1"),
	}

	criteria := &contestmodels.Criteria{SpecificSpotID: "s2"}
	e := New(criteria, testContestStart)

	assert.Equal(t, []string{"s2"}, eligibleIDs(e.EligibleSpots(spots, media, "u1", testNow)))
}

func TestEligibleSpots_SpotTypesIntersection(t *testing.T) {
	multi := testSpot("multi", "u1")
	multi.SpotTypes = []string{"park", "transition"}
	street := testSpot("street", "u1")

	media := []mediamodels.MediaItem{
		testVideo("m1", "multi", "u1"),
		testVideo("m2", "street", "u1"),
	}

	criteria := &contestmodels.Criteria{AllowedSpotTypes: []string{"transition", "diy"}}
	e := New(criteria, testContestStart)

	assert.Equal(t, []string{"multi"}, eligibleIDs(e.EligibleSpots([]spotmodels.Spot{multi, street}, media, "u1", testNow)))
}

func TestEligibleSpots_MinMaxDateBounds(t *testing.T) {
	minDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	maxDate := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		created  time.Time
		eligible bool
	}{
		{"before min", minDate.Add(-time.Second), false},
		{"at min", minDate, true},
		{"inside", minDate.Add(5 * 24 * time.Hour), true},
		{"at max", maxDate, true},
		{"after max", maxDate.Add(time.Second), false},
	}

	criteria := &contestmodels.Criteria{MinDate: timePtr(minDate), MaxDate: timePtr(maxDate)}
	e := New(criteria, testContestStart)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spot := testSpot("s1", "u1")
			spot.CreatedAt = tt.created
			media := []mediamodels.MediaItem{testVideo("m1", "s1", "u1")}
			got := e.EligibleSpots([]spotmodels.Spot{spot}, media, "u1", testNow)
			assert.Equal(t, tt.eligible, len(got) == 1)
		})
	}
}

func TestEligibleSpots_RiderTypesNotEnforced(t *testing.T) {
	// allowed_rider_types is a display-only field on the contest detail
	// page; the evaluator never reads it.
	spot := testSpot("s1", "u1")
	media := []mediamodels.MediaItem{testVideo("m1", "s1", "u1")}

	criteria := &contestmodels.Criteria{AllowedRiderTypes: []string{"bmx"}}
	e := New(criteria, testContestStart)

	assert.Equal(t, []string{"s1"}, eligibleIDs(e.EligibleSpots([]spotmodels.Spot{spot}, media, "u1", testNow)))
}

func TestEligibleMedia(t *testing.T) {
	own := testVideo("m1", "s1", "u1")
	other := testVideo("m2", "s1", "u2")
	photo := testPhoto("m3", "s1", "u1")
	stale := testVideo("m4", "s1", "u1")
	stale.CreatedAt = testNow.Add(-90 * 24 * time.Hour)

	criteria := &contestmodels.Criteria{MediaCreationTimeFrame: contestmodels.TimeFrameLast60Days}
	e := New(criteria, testContestStart)

	got := e.EligibleMedia([]mediamodels.MediaItem{own, other, photo, stale}, "u1", testNow)

	require.Len(t, got, 1)
	assert.Equal(t, "m1", got[0].ID)
}

func TestEligibleMedia_PhotoContest(t *testing.T) {
	video := testVideo("m1", "s1", "u1")
	photo := testPhoto("m2", "s1", "u1")

	criteria := &contestmodels.Criteria{
		RequiredMediaTypes: []mediamodels.MediaType{mediamodels.MediaTypePhoto},
	}
	e := New(criteria, testContestStart)

	got := e.EligibleMedia([]mediamodels.MediaItem{video, photo}, "u1", testNow)
	require.Len(t, got, 1)
	assert.Equal(t, "m2", got[0].ID)
}

func TestEligibleMedia_BothTypesAllowed(t *testing.T) {
	video := testVideo("m1", "s1", "u1")
	photo := testPhoto("m2", "s1", "u1")

	criteria := &contestmodels.Criteria{
		RequiredMediaTypes: []mediamodels.MediaType{mediamodels.MediaTypePhoto, mediamodels.MediaTypeVideo},
	}
	e := New(criteria, testContestStart)

	got := e.EligibleMedia([]mediamodels.MediaItem{video, photo}, "u1", testNow)
	assert.Len(t, got, 2)
}

func TestEligibleSpots_OrderPreserved(t *testing.T) {
	spots := []spotmodels.Spot{
		testSpot("c", "u1"), testSpot("a", "u1"), testSpot("b", "u1"),
	}
	media := []mediamodels.MediaItem{
		testVideo("m1", "a", "u1"),
		testVideo("m2", "b", "u1"),
		testVideo("m3", "c", "u1"),
	}

	e := New(&contestmodels.Criteria{}, testContestStart)
	got := e.EligibleSpots(spots, media, "u1", testNow)

	assert.Equal(t, []string{"c", "a", "b"}, eligibleIDs(got))
}
