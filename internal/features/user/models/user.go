package models

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrAlreadyFollowing = errors.New("already following this user")
)

// User is a SpotHop profile. Identity comes from the hosted auth
// provider; the row is created on first authenticated request.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"display_name"`
	RiderType   string    `json:"rider_type,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	IsBanned    bool      `json:"is_banned,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProfileUpdate is the payload for editing one's own profile.
type ProfileUpdate struct {
	DisplayName *string `json:"display_name,omitempty" binding:"omitempty,min=1,max=50"`
	RiderType   *string `json:"rider_type,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty" binding:"omitempty,url,max=2048"`
	Bio         *string `json:"bio,omitempty" binding:"omitempty,max=500"`
}

// Follow links a follower to a followed user.
type Follow struct {
	FollowerID string    `json:"follower_id"`
	FollowedID string    `json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
}
