package models

import "time"

// ContestStatus is the lifecycle phase of a contest.
type ContestStatus string

const (
	ContestStatusDraft    ContestStatus = "draft"
	ContestStatusActive   ContestStatus = "active"   // accepting submissions
	ContestStatusVoting   ContestStatus = "voting"   // submissions closed, votes open
	ContestStatusFinished ContestStatus = "finished" // winners fixed
)

// CanTransitionTo enforces the forward-only lifecycle.
func (s ContestStatus) CanTransitionTo(next ContestStatus) bool {
	switch s {
	case ContestStatusDraft:
		return next == ContestStatusActive
	case ContestStatusActive:
		return next == ContestStatusVoting
	case ContestStatusVoting:
		return next == ContestStatusFinished
	}
	return false
}

// VotingType determines who decides the winners.
type VotingType string

const (
	VotingTypePublic VotingType = "public"
	VotingTypeJudges VotingType = "judges"
)

// Contest is a photo/video competition gated by criteria.
type Contest struct {
	ID          string        `json:"id"`
	CreatedBy   string        `json:"created_by"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	StartsAt    time.Time     `json:"starts_at"`
	EndsAt      time.Time     `json:"ends_at"`
	Status      ContestStatus `json:"status"`
	VotingType  VotingType    `json:"voting_type"`
	Criteria    Criteria      `json:"criteria"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// ContestCreate is the admin payload for creating a contest.
type ContestCreate struct {
	Title       string     `json:"title" binding:"required,min=3,max=200"`
	Description string     `json:"description" binding:"max=2000"`
	StartsAt    time.Time  `json:"starts_at" binding:"required"`
	EndsAt      time.Time  `json:"ends_at" binding:"required"`
	VotingType  VotingType `json:"voting_type" binding:"required,oneof=public judges"`
	Criteria    Criteria   `json:"criteria"`
}

// ContestUpdate is the admin payload for editing a draft contest.
type ContestUpdate struct {
	Title       *string     `json:"title,omitempty" binding:"omitempty,min=3,max=200"`
	Description *string     `json:"description,omitempty" binding:"omitempty,max=2000"`
	StartsAt    *time.Time  `json:"starts_at,omitempty"`
	EndsAt      *time.Time  `json:"ends_at,omitempty"`
	VotingType  *VotingType `json:"voting_type,omitempty" binding:"omitempty,oneof=public judges"`
	Criteria    *Criteria   `json:"criteria,omitempty"`
}

// Entry is one user's submission: a spot represented by one media item.
type Entry struct {
	ID        string    `json:"id"`
	ContestID string    `json:"contest_id"`
	UserID    string    `json:"user_id"`
	SpotID    string    `json:"spot_id"`
	MediaID   string    `json:"media_id"`
	MediaType string    `json:"media_type"`
	CreatedAt time.Time `json:"created_at"`
	Votes     int       `json:"votes,omitempty"`
}

// EntryCreate is the submission payload.
type EntryCreate struct {
	SpotID  string `json:"spot_id" binding:"required,uuid"`
	MediaID string `json:"media_id" binding:"required,uuid"`
}

// Vote is one user's vote for an entry in a public-voting contest.
type Vote struct {
	ContestID string    `json:"contest_id"`
	EntryID   string    `json:"entry_id"`
	VoterID   string    `json:"voter_id"`
	CreatedAt time.Time `json:"created_at"`
}
