package models

import "time"

// Spot is a physical location users can document and discuss.
//
// IsLit, Latitude and Longitude are pointers: for old imports these fields
// can be absent, and contest eligibility treats "absent" differently from
// any concrete value. KickoutRisk keeps its zero value for "not rated"
// (the scale starts at 1).
type Spot struct {
	ID           string    `json:"id"`
	CreatedBy    string    `json:"created_by"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	SpotTypes    []string  `json:"spot_type"`
	Difficulty   string    `json:"difficulty,omitempty"`
	IsLit        *bool     `json:"is_lit,omitempty"`
	KickoutRisk  float64   `json:"kickout_risk,omitempty"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasCoordinates reports whether both coordinates are present.
func (s *Spot) HasCoordinates() bool {
	return s.Latitude != nil && s.Longitude != nil
}

// SpotCreate is the payload for creating a spot.
type SpotCreate struct {
	Name         string   `json:"name" binding:"required,min=1,max=200"`
	Description  string   `json:"description" binding:"max=2000"`
	SpotTypes    []string `json:"spot_type" binding:"required,min=1"`
	Difficulty   string   `json:"difficulty" binding:"omitempty"`
	IsLit        *bool    `json:"is_lit"`
	KickoutRisk  float64  `json:"kickout_risk" binding:"omitempty,min=1,max=10"`
	Latitude     *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude    *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
	ThumbnailURL string   `json:"thumbnail_url" binding:"omitempty,url"`
}

// SpotUpdate is the payload for a partial spot update.
type SpotUpdate struct {
	Name         *string  `json:"name,omitempty" binding:"omitempty,min=1,max=200"`
	Description  *string  `json:"description,omitempty" binding:"omitempty,max=2000"`
	SpotTypes    []string `json:"spot_type,omitempty"`
	Difficulty   *string  `json:"difficulty,omitempty"`
	IsLit        *bool    `json:"is_lit,omitempty"`
	KickoutRisk  *float64 `json:"kickout_risk,omitempty" binding:"omitempty,min=1,max=10"`
	Latitude     *float64 `json:"latitude,omitempty" binding:"omitempty,min=-90,max=90"`
	Longitude    *float64 `json:"longitude,omitempty" binding:"omitempty,min=-180,max=180"`
	ThumbnailURL *string  `json:"thumbnail_url,omitempty" binding:"omitempty,url"`
}

// SpotFilter narrows spot listing queries.
type SpotFilter struct {
	SpotType       string
	Difficulty     string
	IsLit          *bool
	MaxKickoutRisk float64
	// Center + RadiusKm > 0 limits results to a circle; filtering happens
	// in the service with the same haversine the contest evaluator uses.
	Latitude  *float64
	Longitude *float64
	RadiusKm  float64
	Limit     int
	Offset    int
}

// Comment is a discussion entry under a spot.
type Comment struct {
	ID        string    `json:"id"`
	SpotID    string    `json:"spot_id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentCreate is the payload for posting a comment.
type CommentCreate struct {
	Body string `json:"body" binding:"required,min=1,max=2000"`
}
