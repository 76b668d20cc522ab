package models

import (
	"fmt"
	"time"

	mediamodels "spothop-backend/internal/features/media/models"
)

// TimeFrame is a relative window bounding creation timestamps.
type TimeFrame string

const (
	TimeFrameAnytime           TimeFrame = "anytime"
	TimeFrameDuringCompetition TimeFrame = "during_competition"
	TimeFrameLast30Days        TimeFrame = "last_30_days"
	TimeFrameLast60Days        TimeFrame = "last_60_days"
	TimeFrameLast90Days        TimeFrame = "last_90_days"
)

func (tf TimeFrame) Known() bool {
	switch tf {
	case "", TimeFrameAnytime, TimeFrameDuringCompetition,
		TimeFrameLast30Days, TimeFrameLast60Days, TimeFrameLast90Days:
		return true
	}
	return false
}

// Criteria is the declarative rule-set an admin attaches to a contest.
// Every field is optional; an absent field means "no restriction" (except
// RequiredMediaTypes, which defaults to video when absent).
type Criteria struct {
	AllowedSpotTypes    []string `json:"allowed_spot_types,omitempty"`
	AllowedRiderTypes   []string `json:"allowed_rider_types,omitempty"` // display-only, never enforced
	AllowedDifficulties []string `json:"allowed_difficulties,omitempty"`
	AllowedIsLit        *bool    `json:"allowed_is_lit,omitempty"`

	AllowedKickoutRiskMax *float64 `json:"allowed_kickout_risk_max,omitempty"`

	SpecificSpotID string `json:"specific_spot_id,omitempty"`

	LocationLatitude  *float64 `json:"location_latitude,omitempty"`
	LocationLongitude *float64 `json:"location_longitude,omitempty"`
	LocationRadiusKm  *float64 `json:"location_radius_km,omitempty"`

	RequireSpotCreatorIsCompetitor bool `json:"require_spot_creator_is_competitor,omitempty"`

	SpotCreationTimeFrame  TimeFrame `json:"spot_creation_time_frame,omitempty"`
	MediaCreationTimeFrame TimeFrame `json:"media_creation_time_frame,omitempty"`

	RequiredMediaTypes []mediamodels.MediaType `json:"required_media_types,omitempty"`

	MaxEntriesPerUser int `json:"max_entries_per_user,omitempty"`

	MinDate *time.Time `json:"min_date,omitempty"`
	MaxDate *time.Time `json:"max_date,omitempty"`
}

// RequiredTypes returns the media types the contest accepts, defaulting
// to video when the field is absent.
func (c *Criteria) RequiredTypes() []mediamodels.MediaType {
	if len(c.RequiredMediaTypes) == 0 {
		return []mediamodels.MediaType{mediamodels.MediaTypeVideo}
	}
	return c.RequiredMediaTypes
}

// AcceptsMediaType reports whether t is among the required media types.
func (c *Criteria) AcceptsMediaType(t mediamodels.MediaType) bool {
	for _, rt := range c.RequiredTypes() {
		if rt == t {
			return true
		}
	}
	return false
}

// HasGeofence reports whether all three location fields are set. A partial
// geofence (e.g. a radius without a center) is tolerated and means no
// location restriction.
func (c *Criteria) HasGeofence() bool {
	return c.LocationLatitude != nil && c.LocationLongitude != nil && c.LocationRadiusKm != nil
}

// EntryLimit returns the per-user entry cap, defaulting to 1.
func (c *Criteria) EntryLimit() int {
	if c.MaxEntriesPerUser >= 1 {
		return c.MaxEntriesPerUser
	}
	return 1
}

// Validate checks criteria shape on contest create/update. The evaluator
// itself never validates; malformed candidate data is handled by exclusion.
func (c *Criteria) Validate() error {
	if c.AllowedKickoutRiskMax != nil {
		if *c.AllowedKickoutRiskMax < 1 || *c.AllowedKickoutRiskMax > 10 {
			return fmt.Errorf("allowed_kickout_risk_max must be between 1 and 10")
		}
	}
	if c.LocationRadiusKm != nil && *c.LocationRadiusKm <= 0 {
		return fmt.Errorf("location_radius_km must be positive")
	}
	if c.LocationLatitude != nil && (*c.LocationLatitude < -90 || *c.LocationLatitude > 90) {
		return fmt.Errorf("location_latitude must be between -90 and 90")
	}
	if c.LocationLongitude != nil && (*c.LocationLongitude < -180 || *c.LocationLongitude > 180) {
		return fmt.Errorf("location_longitude must be between -180 and 180")
	}
	if !c.SpotCreationTimeFrame.Known() {
		return fmt.Errorf("unknown spot_creation_time_frame: %s", c.SpotCreationTimeFrame)
	}
	if !c.MediaCreationTimeFrame.Known() {
		return fmt.Errorf("unknown media_creation_time_frame: %s", c.MediaCreationTimeFrame)
	}
	for _, mt := range c.RequiredMediaTypes {
		if !mt.Valid() {
			return fmt.Errorf("invalid required media type: %s", mt)
		}
	}
	if c.MaxEntriesPerUser < 0 {
		return fmt.Errorf("max_entries_per_user cannot be negative")
	}
	if c.MinDate != nil && c.MaxDate != nil && c.MinDate.After(*c.MaxDate) {
		return fmt.Errorf("min_date cannot be after max_date")
	}
	return nil
}
