package models

import "time"

// MediaType is the kind of a media item.
type MediaType string

const (
	MediaTypePhoto MediaType = "photo"
	MediaTypeVideo MediaType = "video"
)

func (t MediaType) Valid() bool {
	return t == MediaTypePhoto || t == MediaTypeVideo
}

// MediaItem is the metadata record for a photo or video of a spot. The
// binary itself lives in the hosted object store; we only keep URLs.
type MediaItem struct {
	ID           string    `json:"id"`
	SpotID       string    `json:"spot_id"`
	AuthorID     string    `json:"author_id"`
	Type         MediaType `json:"type"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// MediaCreate is the payload for registering an uploaded media item.
type MediaCreate struct {
	SpotID       string    `json:"spot_id" binding:"required,uuid"`
	Type         MediaType `json:"type" binding:"required,oneof=photo video"`
	URL          string    `json:"url" binding:"required,url"`
	ThumbnailURL string    `json:"thumbnail_url" binding:"omitempty,url"`
}
