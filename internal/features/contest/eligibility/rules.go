package eligibility

import (
	spotmodels "spothop-backend/internal/features/spot/models"
	"spothop-backend/internal/utils/geo"
)

// spotRule is one independent eligibility predicate. Rules are combined with
// logical AND in order; the first failing rule excludes the spot.
type spotRule struct {
	name  string
	check func(e *Evaluator, s *spotmodels.Spot, ctx *evalContext) bool
}

var spotRules = []spotRule{
	{"qualifying_media", ruleQualifyingMedia},
	{"min_date", ruleMinDate},
	{"max_date", ruleMaxDate},
	{"spot_types", ruleSpotTypes},
	{"difficulty", ruleDifficulty},
	{"is_lit", ruleIsLit},
	{"kickout_risk", ruleKickoutRisk},
	{"specific_spot", ruleSpecificSpot},
	{"geofence", ruleGeofence},
	{"creator_is_competitor", ruleCreatorIsCompetitor},
	{"spot_time_frame", ruleSpotTimeFrame},
}

func ruleQualifyingMedia(e *Evaluator, s *spotmodels.Spot, ctx *evalContext) bool {
	_, ok := ctx.qualifiedSpotIDs[s.ID]
	return ok
}

func ruleMinDate(e *Evaluator, s *spotmodels.Spot, ctx *evalContext) bool {
	if e.criteria.MinDate == nil {
		return true
	}
	return !s.CreatedAt.Before(*e.criteria.MinDate)
}

func ruleMaxDate(e *Evaluator, s *spotmodels.Spot, ctx *evalContext) bool {
	if e.criteria.MaxDate == nil {
		return true
	}
	return !s.CreatedAt.After(*e.criteria.MaxDate)
}

func ruleSpotTypes(e *Evaluator, s *spotmodels.Spot, ctx *evalContext) bool {
	if len(e.criteria.AllowedSpotTypes) == 0 {
		return true
	}
	for _, allowed := range e.criteria.AllowedSpotTypes {
		for _, st := range s.SpotTypes {
			if st == allowed {
				return true
			}
		}
	}
	return false
}

func ruleDifficulty(e *Evaluator, s *spotmodels.Spot, ctx *evalContext) bool {
	if len(e.criteria.AllowedDifficulties) == 0 {
		return true
	}
	for _, d := range e.criteria.AllowedDifficulties {
		if s.Difficulty == d {
			return true
		}
	}
	return false
}

func ruleIsLit(e *Evaluator, s *spotmodels.Spot, ctx *evalContext) bool {
	if e.criteria.AllowedIsLit == nil {
		return true
	}
	// Strict equality: a spot without the flag never matches.
	return s.IsLit != nil && *s.IsLit == *e.criteria.AllowedIsLit
}

func ruleKickoutRisk(e *Evaluator, s *spotmodels.Spot, ctx *evalContext) bool {
	if e.criteria.AllowedKickoutRiskMax == nil {
		return true
	}
	// An unrated spot (risk 0) is excluded. The rated scale starts at 1,
	// so 0 only ever means "no rating".
	if s.KickoutRisk == 0 {
		return false
	}
	return s.KickoutRisk <= *e.criteria.AllowedKickoutRiskMax
}

func ruleSpecificSpot(e *Evaluator, s *spotmodels.Spot, ctx *evalContext) bool {
	if e.criteria.SpecificSpotID == "" {
		return true
	}
	return s.ID == e.criteria.SpecificSpotID
}

func ruleGeofence(e *Evaluator, s *spotmodels.Spot, ctx *evalContext) bool {
	if !e.criteria.HasGeofence() {
		return true
	}
	if !s.HasCoordinates() {
		return false
	}
	radiusMeters := *e.criteria.LocationRadiusKm * 1000
	return geo.WithinRadius(
		*s.Latitude, *s.Longitude,
		*e.criteria.LocationLatitude, *e.criteria.LocationLongitude,
		radiusMeters,
	)
}

func ruleCreatorIsCompetitor(e *Evaluator, s *spotmodels.Spot, ctx *evalContext) bool {
	if !e.criteria.RequireSpotCreatorIsCompetitor {
		return true
	}
	return s.CreatedBy == ctx.userID
}

func ruleSpotTimeFrame(e *Evaluator, s *spotmodels.Spot, ctx *evalContext) bool {
	return e.insideTimeFrame(s.CreatedAt, e.criteria.SpotCreationTimeFrame, ctx.now)
}
