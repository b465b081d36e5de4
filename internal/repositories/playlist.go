package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/retardedwizard/muxamp/internal/codec"
	"github.com/retardedwizard/muxamp/internal/models"
	"github.com/retardedwizard/muxamp/internal/shared"
)

// idAttempts bounds regeneration of the short token on the off chance a
// freshly generated id collides with an existing row.
const idAttempts = 3

// PlaylistRepository persists the canonical query string → short id mapping.
type PlaylistRepository struct {
	db *sql.DB
}

// NewPlaylistRepository creates a new PlaylistRepository with the given database connection
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// GetID returns the id saved for queryString, if any. Lookup only, no
// mutation.
func (r *PlaylistRepository) GetID(queryString string) (string, bool, error) {
	var id string
	err := r.db.QueryRow("SELECT id FROM playlists WHERE query_string = ?", queryString).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to look up playlist id: %w", err)
	}
	return id, true, nil
}

// GetString returns the canonical query string saved under id, if any.
func (r *PlaylistRepository) GetString(id string) (string, bool, error) {
	var queryString string
	err := r.db.QueryRow("SELECT query_string FROM playlists WHERE id = ?", id).Scan(&queryString)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to look up playlist: %w", err)
	}
	return queryString, true, nil
}

// Get returns the full record for id.
func (r *PlaylistRepository) Get(id string) (*models.PlaylistRecord, error) {
	var record models.PlaylistRecord
	err := r.db.QueryRow(
		"SELECT id, query_string, created_at FROM playlists WHERE id = ?", id,
	).Scan(&record.ID, &record.QueryString, &record.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}
	return &record, nil
}

// Save canonicalizes fields and persists the result, returning the stable id.
// Equal field sets always yield one id; an empty canonical string is rejected
// with [shared.ErrEmptyPlaylist].
func (r *PlaylistRepository) Save(fields map[string][]string) (string, error) {
	return r.SaveQueryString(codec.Canonical(fields))
}

// SaveQueryString is the get-or-create primitive behind Save. The existence
// check and insert share one transaction; a concurrent save that wins the
// UNIQUE(query_string) race simply becomes the id this call returns.
func (r *PlaylistRepository) SaveQueryString(queryString string) (string, error) {
	if queryString == "" {
		return "", shared.ErrEmptyPlaylist
	}

	for attempt := 0; attempt < idAttempts; attempt++ {
		id, err := r.saveOnce(queryString)
		if err == nil {
			return id, nil
		}

		if strings.Contains(err.Error(), "UNIQUE constraint") {
			if strings.Contains(err.Error(), "query_string") {
				// Lost the race to a concurrent identical save; its id wins.
				if winner, ok, lookupErr := r.GetID(queryString); lookupErr == nil && ok {
					return winner, nil
				}
			}
			// id token collision, regenerate and retry
			continue
		}

		return "", err
	}

	return "", fmt.Errorf("failed to save playlist after %d attempts", idAttempts)
}

func (r *PlaylistRepository) saveOnce(queryString string) (string, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existing string
	err = tx.QueryRow("SELECT id FROM playlists WHERE query_string = ?", queryString).Scan(&existing)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("failed to check existing playlist: %w", err)
	}

	sequence, err := NextSequence(tx, "playlists")
	if err != nil {
		return "", fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.ShortID()
	_, err = tx.Exec(
		"INSERT INTO playlists (id, sequence, query_string, created_at) VALUES (?, ?, ?, ?)",
		id, sequence, queryString, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert playlist: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit playlist save: %w", err)
	}

	return id, nil
}

// Count returns the number of saved playlists.
func (r *PlaylistRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM playlists").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count playlists: %w", err)
	}
	return count, nil
}
