// Package eligibility decides which of a user's spots and media items can be
// entered into a contest. The evaluator is pure: it performs no I/O, never
// mutates its inputs, and returns identical results for identical inputs.
//
// Criteria-level absence loosens (the rule is skipped); candidate-level
// absence under an active rule tightens (the candidate is excluded).
// Malformed candidates are handled by exclusion, never by panicking.
package eligibility

import (
	"time"

	contestmodels "spothop-backend/internal/features/contest/models"
	mediamodels "spothop-backend/internal/features/media/models"
	spotmodels "spothop-backend/internal/features/spot/models"
)

// Evaluator applies one contest's criteria to candidate spots and media.
type Evaluator struct {
	criteria     *contestmodels.Criteria
	contestStart time.Time
}

// New builds an evaluator for the given criteria. contestStart anchors the
// during_competition time frame.
func New(criteria *contestmodels.Criteria, contestStart time.Time) *Evaluator {
	return &Evaluator{
		criteria:     criteria,
		contestStart: contestStart,
	}
}

// ForContest is a convenience constructor binding the contest's own criteria.
func ForContest(contest *contestmodels.Contest) *Evaluator {
	return New(&contest.Criteria, contest.StartsAt)
}

// evalContext carries the per-call state the spot rules read from.
type evalContext struct {
	userID string
	now    time.Time
	// qualifiedSpotIDs holds the ids of spots that have at least one media
	// item of a required type passing the media time frame.
	qualifiedSpotIDs map[string]struct{}
}

// EligibleSpots returns the subset of candidateSpots that satisfies every
// active criterion, preserving input order. candidateSpots is expected to be
// the union of the user's created and favorited spots, deduplicated by id;
// candidateMedia is the user's own media across all spots.
//
// A spot with zero qualifying media can never be eligible, regardless of the
// other criteria. That gate is applied first.
func (e *Evaluator) EligibleSpots(candidateSpots []spotmodels.Spot, candidateMedia []mediamodels.MediaItem, userID string, now time.Time) []spotmodels.Spot {
	ctx := &evalContext{
		userID:           userID,
		now:              now,
		qualifiedSpotIDs: e.qualifiedSpotIDs(candidateMedia, now),
	}

	eligible := make([]spotmodels.Spot, 0, len(candidateSpots))
	for i := range candidateSpots {
		if e.spotEligible(&candidateSpots[i], ctx) {
			eligible = append(eligible, candidateSpots[i])
		}
	}
	return eligible
}

// EligibleMedia returns the media items of one already-selected spot that the
// acting user may submit: their own items, of a required type, inside the
// media time frame. Input order is preserved.
func (e *Evaluator) EligibleMedia(spotMedia []mediamodels.MediaItem, userID string, now time.Time) []mediamodels.MediaItem {
	eligible := make([]mediamodels.MediaItem, 0, len(spotMedia))
	for _, item := range spotMedia {
		if item.AuthorID != userID {
			continue
		}
		if !e.mediaQualifies(&item, now) {
			continue
		}
		eligible = append(eligible, item)
	}
	return eligible
}

// MediaQualifies reports whether a single media item would qualify a spot:
// required type and inside the media time frame. Exposed for the submission
// path, which re-checks the chosen item server-side.
func (e *Evaluator) MediaQualifies(item *mediamodels.MediaItem, now time.Time) bool {
	return e.mediaQualifies(item, now)
}

func (e *Evaluator) spotEligible(spot *spotmodels.Spot, ctx *evalContext) bool {
	for _, rule := range spotRules {
		if !rule.check(e, spot, ctx) {
			return false
		}
	}
	return true
}

func (e *Evaluator) qualifiedSpotIDs(media []mediamodels.MediaItem, now time.Time) map[string]struct{} {
	ids := make(map[string]struct{})
	for i := range media {
		if e.mediaQualifies(&media[i], now) {
			ids[media[i].SpotID] = struct{}{}
		}
	}
	return ids
}

func (e *Evaluator) mediaQualifies(item *mediamodels.MediaItem, now time.Time) bool {
	if !e.criteria.AcceptsMediaType(item.Type) {
		return false
	}
	return e.insideTimeFrame(item.CreatedAt, e.criteria.MediaCreationTimeFrame, now)
}

// insideTimeFrame applies the Time-Frame Rule: the timestamp must be at or
// after the frame's threshold, inclusive. anytime, absence, and unknown
// values all pass.
func (e *Evaluator) insideTimeFrame(ts time.Time, tf contestmodels.TimeFrame, now time.Time) bool {
	threshold, active := e.timeFrameThreshold(tf, now)
	if !active {
		return true
	}
	return !ts.Before(threshold)
}

func (e *Evaluator) timeFrameThreshold(tf contestmodels.TimeFrame, now time.Time) (time.Time, bool) {
	switch tf {
	case contestmodels.TimeFrameDuringCompetition:
		return e.contestStart, true
	case contestmodels.TimeFrameLast30Days:
		return now.Add(-30 * 24 * time.Hour), true
	case contestmodels.TimeFrameLast60Days:
		return now.Add(-60 * 24 * time.Hour), true
	case contestmodels.TimeFrameLast90Days:
		return now.Add(-90 * 24 * time.Hour), true
	default:
		// anytime, absent, or an unmapped value: no lower bound.
		return time.Time{}, false
	}
}
