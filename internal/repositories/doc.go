// Package repositories provides the persistence layer for saved playlists.
//
// A saved playlist is a (short id, canonical query string) pair. Save is
// idempotent get-or-create: the existence check and the insert run inside one
// transaction against a UNIQUE constraint on the query string, so two
// concurrent saves of the same canonical string always converge on a single
// winning id. Sequence numbers provide human-readable ordering for rows and
// are not exposed through the HTTP surface.
package repositories
