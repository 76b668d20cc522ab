package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mediamodels "spothop-backend/internal/features/media/models"
)

func TestRequiredTypesDefaultsToVideo(t *testing.T) {
	c := &Criteria{}
	assert.Equal(t, []mediamodels.MediaType{mediamodels.MediaTypeVideo}, c.RequiredTypes())

	c = &Criteria{RequiredMediaTypes: []mediamodels.MediaType{mediamodels.MediaTypePhoto}}
	assert.Equal(t, []mediamodels.MediaType{mediamodels.MediaTypePhoto}, c.RequiredTypes())
}

func TestAcceptsMediaType(t *testing.T) {
	c := &Criteria{}
	assert.True(t, c.AcceptsMediaType(mediamodels.MediaTypeVideo))
	assert.False(t, c.AcceptsMediaType(mediamodels.MediaTypePhoto))

	both := &Criteria{RequiredMediaTypes: []mediamodels.MediaType{
		mediamodels.MediaTypePhoto, mediamodels.MediaTypeVideo,
	}}
	assert.True(t, both.AcceptsMediaType(mediamodels.MediaTypePhoto))
	assert.True(t, both.AcceptsMediaType(mediamodels.MediaTypeVideo))
}

func TestEntryLimitDefaultsToOne(t *testing.T) {
	assert.Equal(t, 1, (&Criteria{}).EntryLimit())
	assert.Equal(t, 1, (&Criteria{MaxEntriesPerUser: 0}).EntryLimit())
	assert.Equal(t, 3, (&Criteria{MaxEntriesPerUser: 3}).EntryLimit())
}

func TestHasGeofenceRequiresAllThreeFields(t *testing.T) {
	lat, lng, radius := 40.0, -74.0, 10.0

	assert.False(t, (&Criteria{}).HasGeofence())
	assert.False(t, (&Criteria{LocationLatitude: &lat}).HasGeofence())
	assert.False(t, (&Criteria{LocationLatitude: &lat, LocationLongitude: &lng}).HasGeofence())
	assert.False(t, (&Criteria{LocationRadiusKm: &radius}).HasGeofence())
	assert.True(t, (&Criteria{
		LocationLatitude:  &lat,
		LocationLongitude: &lng,
		LocationRadiusKm:  &radius,
	}).HasGeofence())
}

func TestTimeFrameKnown(t *testing.T) {
	known := []TimeFrame{"", TimeFrameAnytime, TimeFrameDuringCompetition,
		TimeFrameLast30Days, TimeFrameLast60Days, TimeFrameLast90Days}
	for _, tf := range known {
		assert.True(t, tf.Known(), "expected %q to be known", tf)
	}
	assert.False(t, TimeFrame("last_week").Known())
}

func TestCriteriaValidate(t *testing.T) {
	floatPtr := func(v float64) *float64 { return &v }
	timePtr := func(v time.Time) *time.Time { return &v }

	tests := []struct {
		name     string
		criteria Criteria
		wantErr  bool
	}{
		{name: "empty criteria", criteria: Criteria{}, wantErr: false},
		{
			name: "full valid criteria",
			criteria: Criteria{
				AllowedSpotTypes:      []string{"park"},
				AllowedKickoutRiskMax: floatPtr(5),
				LocationLatitude:      floatPtr(40.7),
				LocationLongitude:     floatPtr(-74.0),
				LocationRadiusKm:      floatPtr(10),
				SpotCreationTimeFrame: TimeFrameLast30Days,
				RequiredMediaTypes:    []mediamodels.MediaType{mediamodels.MediaTypePhoto},
				MaxEntriesPerUser:     2,
			},
			wantErr: false,
		},
		{
			name:     "kickout risk max below scale",
			criteria: Criteria{AllowedKickoutRiskMax: floatPtr(0.5)},
			wantErr:  true,
		},
		{
			name:     "kickout risk max above scale",
			criteria: Criteria{AllowedKickoutRiskMax: floatPtr(11)},
			wantErr:  true,
		},
		{
			name:     "zero radius",
			criteria: Criteria{LocationRadiusKm: floatPtr(0)},
			wantErr:  true,
		},
		{
			name:     "latitude out of range",
			criteria: Criteria{LocationLatitude: floatPtr(91)},
			wantErr:  true,
		},
		{
			name:     "longitude out of range",
			criteria: Criteria{LocationLongitude: floatPtr(-181)},
			wantErr:  true,
		},
		{
			name:     "unknown spot time frame",
			criteria: Criteria{SpotCreationTimeFrame: "last_week"},
			wantErr:  true,
		},
		{
			name:     "unknown media time frame",
			criteria: Criteria{MediaCreationTimeFrame: "yesterday"},
			wantErr:  true,
		},
		{
			name:     "invalid media type",
			criteria: Criteria{RequiredMediaTypes: []mediamodels.MediaType{"gif"}},
			wantErr:  true,
		},
		{
			name:     "negative entry limit",
			criteria: Criteria{MaxEntriesPerUser: -1},
			wantErr:  true,
		},
		{
			name: "min date after max date",
			criteria: Criteria{
				MinDate: timePtr(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
				MaxDate: timePtr(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.criteria.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestContestStatusTransitions(t *testing.T) {
	assert.True(t, ContestStatusDraft.CanTransitionTo(ContestStatusActive))
	assert.True(t, ContestStatusActive.CanTransitionTo(ContestStatusVoting))
	assert.True(t, ContestStatusVoting.CanTransitionTo(ContestStatusFinished))

	assert.False(t, ContestStatusDraft.CanTransitionTo(ContestStatusVoting))
	assert.False(t, ContestStatusActive.CanTransitionTo(ContestStatusDraft))
	assert.False(t, ContestStatusFinished.CanTransitionTo(ContestStatusActive))
	assert.False(t, ContestStatusFinished.CanTransitionTo(ContestStatusFinished))
}
