package models

import (
	"fmt"
	"time"
)

// Track represents a media item resolved against an external provider.
type Track struct {
	Ordinal  int    `json:"ordinal"`  // List-identity number, scoped to one resolution session
	Provider string `json:"provider"` // Provider code, e.g. "ytv" or "sct"
	MediaID  string `json:"mediaId"`  // Opaque id, unique within the provider
	Title    string `json:"title"`
	Author   string `json:"author"`
	Duration int    `json:"duration"` // Duration in seconds
	URL      string `json:"url"`      // Canonical permalink at the provider
}

// Key returns the cache/dedup key for the track's provider reference.
func (t Track) Key() string {
	return t.Provider + ":" + t.MediaID
}

// String implements fmt.Stringer for log output.
func (t Track) String() string {
	return fmt.Sprintf("%s:%s %q by %q", t.Provider, t.MediaID, t.Title, t.Author)
}

// PlaylistRecord maps a canonical query string to its persisted short id.
//
// The mapping is one-to-one in both directions: equal canonical strings always
// share one id, and distinct strings never collide on an id.
type PlaylistRecord struct {
	ID          string    `json:"id"`
	QueryString string    `json:"queryString"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate checks that the record holds a non-empty id and query string.
func (p PlaylistRecord) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("playlist record has empty id")
	}
	if p.QueryString == "" {
		return fmt.Errorf("playlist record %s has empty query string", p.ID)
	}
	return nil
}
