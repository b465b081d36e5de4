package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/retardedwizard/muxamp/internal/cache"
	"github.com/retardedwizard/muxamp/internal/codec"
	"github.com/retardedwizard/muxamp/internal/models"
	"github.com/retardedwizard/muxamp/internal/repositories"
	"github.com/retardedwizard/muxamp/internal/resolver"
	"github.com/retardedwizard/muxamp/internal/shared"
)

// MinTracksToCache is the playlist size below which a resolved fetch is not
// worth keeping in the fetch cache.
const MinTracksToCache = 5

// playlistResponse is the wire shape of a playlist fetch: the id echoes the
// request when the playlist exists, and is the JSON literal false when it
// does not.
type playlistResponse struct {
	ID      any            `json:"id"`
	Results []models.Track `json:"results"`
}

// saveResponse carries the shareable id, or false when nothing was saved.
type saveResponse struct {
	ID any `json:"id"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// SearchHandler serves typed provider search results.
type SearchHandler struct {
	resolver *resolver.Resolver
	logger   *log.Logger
}

// NewSearchHandler creates a new [SearchHandler].
func NewSearchHandler(res *resolver.Resolver, logger *log.Logger) *SearchHandler {
	return &SearchHandler{
		resolver: res,
		logger:   shared.WithLogger(logger, "handler", "search"),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *SearchHandler) Routes() []string {
	return []string{"/search/{provider}/{page:[0-9]+}/{query}"}
}

// ServeHTTP runs the search and writes the result list. Any failure, an
// unknown provider code included, degrades to an empty list with status 200.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	page, _ := strconv.Atoi(vars["page"])

	tracks, err := h.resolver.Search(r.Context(), vars["provider"], vars["query"], page)
	if err != nil {
		h.logger.Warn("search failed", "provider", vars["provider"], "error", err)
		tracks = nil
	}
	if tracks == nil {
		tracks = []models.Track{}
	}

	writeJSON(w, http.StatusOK, tracks)
}

// PlaylistHandler serves saved playlists, resolved into typed tracks.
type PlaylistHandler struct {
	repo     *repositories.PlaylistRepository
	resolver *resolver.Resolver
	fetches  *cache.Cache[[]models.Track]
	logger   *log.Logger
}

// NewPlaylistHandler creates a new [PlaylistHandler]. The fetch cache holds
// fully resolved playlists so repeated fetches of a shared link skip
// provider round trips.
func NewPlaylistHandler(repo *repositories.PlaylistRepository, res *resolver.Resolver, fetches *cache.Cache[[]models.Track], logger *log.Logger) *PlaylistHandler {
	return &PlaylistHandler{
		repo:     repo,
		resolver: res,
		fetches:  fetches,
		logger:   shared.WithLogger(logger, "handler", "playlists"),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *PlaylistHandler) Routes() []string {
	return []string{"/playlists/{id}"}
}

// ServeHTTP looks up the stored contents for the id and resolves them.
// An unknown id answers {"id": false, "results": []} with status 200.
func (h *PlaylistHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if tracks, ok := h.fetches.Get(id); ok {
		writeJSON(w, http.StatusOK, playlistResponse{ID: id, Results: tracks})
		return
	}

	queryString, ok, err := h.repo.GetString(id)
	if err != nil {
		h.logger.Error("playlist lookup failed", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, playlistResponse{ID: false, Results: []models.Track{}})
		return
	}
	if !ok {
		writeJSON(w, http.StatusOK, playlistResponse{ID: false, Results: []models.Track{}})
		return
	}

	result := h.resolver.ResolveAll(r.Context(), codec.DecodeOrdered(queryString))
	tracks := result.Tracks
	if tracks == nil {
		tracks = []models.Track{}
	}
	// Small playlists resolve cheaply enough that caching them is not worth
	// the staleness window.
	if len(tracks) >= MinTracksToCache {
		h.fetches.Put(id, tracks)
	}

	writeJSON(w, http.StatusOK, playlistResponse{ID: id, Results: tracks})
}

// SaveHandler persists playlist contents and answers with the shareable id.
type SaveHandler struct {
	repo   *repositories.PlaylistRepository
	logger *log.Logger
}

// NewSaveHandler creates a new [SaveHandler].
func NewSaveHandler(repo *repositories.PlaylistRepository, logger *log.Logger) *SaveHandler {
	return &SaveHandler{
		repo:   repo,
		logger: shared.WithLogger(logger, "handler", "save"),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *SaveHandler) Routes() []string {
	return []string{"/playlists/save"}
}

// ServeHTTP accepts the playlist contents as a JSON object or a form body,
// mapping provider codes to one or more media ids. Empty or unusable input
// answers {"id": false}.
func (h *SaveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		h.logger.Warn("unreadable save body", "error", fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		writeJSON(w, http.StatusOK, saveResponse{ID: false})
		return
	}

	id, err := h.repo.Save(fields)
	if err != nil {
		if errors.Is(err, shared.ErrEmptyPlaylist) {
			writeJSON(w, http.StatusOK, saveResponse{ID: false})
			return
		}
		h.logger.Error("save failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, saveResponse{ID: false})
		return
	}

	writeJSON(w, http.StatusOK, saveResponse{ID: id})
}

// decodeFields reads provider-to-ids fields from a JSON object body or,
// failing that, from form encoding. JSON values may be a single string or an
// array of strings.
func decodeFields(r *http.Request) (map[string][]string, error) {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var raw map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			return nil, err
		}

		fields := make(map[string][]string, len(raw))
		for name, value := range raw {
			switch v := value.(type) {
			case string:
				fields[name] = append(fields[name], v)
			case []any:
				for _, item := range v {
					if s, ok := item.(string); ok {
						fields[name] = append(fields[name], s)
					}
				}
			}
		}
		return fields, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return r.PostForm, nil
}

// StatusHandler reports service health and the stored playlist count.
type StatusHandler struct {
	repo *repositories.PlaylistRepository
}

// NewStatusHandler creates a new [StatusHandler].
func NewStatusHandler(repo *repositories.PlaylistRepository) *StatusHandler {
	return &StatusHandler{repo: repo}
}

// Routes returns the HTTP routes this handler serves.
func (h *StatusHandler) Routes() []string {
	return []string{"/status"}
}

func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	count, err := h.repo.Count()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"ok": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "playlists": count})
}
