// Package models defines the data model for the muxamp playlist service.
//
// The package contains two categories of types:
//
// 1. Resolved media metadata:
//   - [Track] : Metadata for one media item, resolved against its provider
//
// 2. Persistent entities:
//   - [PlaylistRecord] : A saved playlist, i.e. a stable short id paired with
//     the canonical query string encoding the playlist contents
//
// Tracks are immutable once resolved; the playback layer references them but
// never mutates them. A PlaylistRecord is created on the first save of a
// canonical query string and is read-only afterwards.
package models
