// Package domain holds the core types shared across the curation pipeline.
package domain

import (
	"fmt"
	"math"
	"time"
)

// VideoID is the platform's canonical identifier for a single video:
// exactly 11 characters from [A-Za-z0-9_-]. Immutable once resolved.
type VideoID string

// VideoIDLength is the fixed length of a platform video identifier.
const VideoIDLength = 11

// RawVideoMetadata is what the metadata gateway returns for one video.
// It is never mutated; re-fetching supersedes it.
type RawVideoMetadata struct {
	ID          VideoID
	Title       string
	ChannelName string
	DurationRaw string // platform-native ISO-8601 form, e.g. "PT7M30S"
	Thumbnail   string
	Description string

	// Engagement counters are optional upstream; nil means unknown, not zero.
	ViewCount   *uint64
	LikeCount   *uint64
	PublishedAt *time.Time
}

// ResolvedDuration is the canonical decoded duration of a video.
// Seconds is the authority for every policy decision; Minutes is a
// display value rounded to two decimal places and always derived from
// Seconds so the two representations cannot drift apart.
type ResolvedDuration struct {
	Seconds int     `json:"seconds"`
	Minutes float64 `json:"minutes"`
}

// NewResolvedDuration derives both representations from a second count.
func NewResolvedDuration(seconds int) ResolvedDuration {
	return ResolvedDuration{
		Seconds: seconds,
		Minutes: math.Round(float64(seconds)/60*100) / 100,
	}
}

// IsZero reports whether the duration decoded to zero, which callers must
// treat as "unknown, needs confirmation" rather than an actual length.
func (d ResolvedDuration) IsZero() bool {
	return d.Seconds == 0
}

// CeilMinutes returns the duration rounded up to whole minutes, the form
// shown on library items.
func (d ResolvedDuration) CeilMinutes() int {
	return int(math.Ceil(float64(d.Seconds) / 60))
}

func (d ResolvedDuration) String() string {
	return fmt.Sprintf("%.2f min / %ds", d.Minutes, d.Seconds)
}

// SearchResult is one display-ready row of a catalog search. Ephemeral:
// it lives for a single search response and is only ever copied into a
// LibraryItem by an explicit add.
type SearchResult struct {
	ID              VideoID    `json:"videoId"`
	Title           string     `json:"title"`
	ChannelName     string     `json:"channelName"`
	DurationMinutes float64    `json:"duration"`
	DurationSeconds int        `json:"durationSeconds"`
	DurationRaw     string     `json:"durationRaw"`
	Thumbnail       string     `json:"thumbnail"`
	Description     string     `json:"description"`
	URL             string     `json:"url"`
	ViewCount       *uint64    `json:"viewCount,omitempty"`
	LikeCount       *uint64    `json:"likeCount,omitempty"`
	PublishedAt     *time.Time `json:"publishedAt,omitempty"`
	Tags            *TagSet    `json:"tags,omitempty"`
}

// LibraryItem is a committed library entry. Created only after a policy
// pass plus an explicit save; mutated only by edit-then-resave; removed
// only by explicit delete.
type LibraryItem struct {
	ID              int64      `db:"id"               json:"id"`
	VideoID         string     `db:"video_id"         json:"videoId"`
	Title           string     `db:"title"            json:"title"`
	URL             string     `db:"url"              json:"url"`
	ChannelName     string     `db:"channel_name"     json:"channelName"`
	DurationMinutes int        `db:"duration_minutes" json:"durationMinutes"`
	Prompt          string     `db:"prompt"           json:"prompt"`
	Category        string     `db:"category"         json:"category"`
	ViewCount       *uint64    `db:"view_count"       json:"viewCount,omitempty"`
	LikeCount       *uint64    `db:"like_count"       json:"likeCount,omitempty"`
	PublishedAt     *time.Time `db:"published_at"     json:"publishedAt,omitempty"`
	Tags            *TagSet    `db:"-"                json:"tags,omitempty"`
	Position        int        `db:"position"         json:"position"`
	CreatedAt       time.Time  `db:"created_at"       json:"createdAt"`
	UpdatedAt       time.Time  `db:"updated_at"       json:"updatedAt"`
}

// Library item categories.
const (
	CategoryMorning    = "morning"
	CategoryFocus      = "focus"
	CategoryRecovery   = "recovery"
	CategoryMotivation = "motivation"
	CategoryEvening    = "evening"
)
