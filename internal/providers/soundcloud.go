// SoundCloud track [Provider] implementation, against the public tracks API.
package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/retardedwizard/muxamp/internal/shared"
	"golang.org/x/time/rate"
)

// CodeSoundCloud is the provider code for SoundCloud tracks.
const CodeSoundCloud = "sct"

const defaultSoundCloudBaseURL = "https://api.soundcloud.com"

const soundcloudPageSize = 25

// soundcloudUser is the track owner in SoundCloud responses.
type soundcloudUser struct {
	Username string `json:"username"`
}

// soundcloudTrack is the SoundCloud track shape. Durations come back in
// milliseconds.
type soundcloudTrack struct {
	ID           int64          `json:"id"`
	Title        string         `json:"title"`
	User         soundcloudUser `json:"user"`
	DurationMS   int            `json:"duration"`
	PermalinkURL string         `json:"permalink_url"`
	Streamable   bool           `json:"streamable"`
}

// SoundCloud implements [Provider] for SoundCloud tracks.
type SoundCloud struct {
	baseURL    string
	clientID   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewSoundCloud creates a SoundCloud provider client.
func NewSoundCloud(cfg shared.ProviderConfig, client *http.Client) *SoundCloud {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultSoundCloudBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	return &SoundCloud{
		baseURL:    baseURL,
		clientID:   cfg.APIKey,
		httpClient: client,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// Code returns the provider code.
func (s *SoundCloud) Code() string { return CodeSoundCloud }

func (s *SoundCloud) doRequest(ctx context.Context, endpoint string, result any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	apiURL := s.baseURL + endpoint + sep + "client_id=" + url.QueryEscape(s.clientID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %v", shared.ErrTimeout, err)
		}
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("soundcloud API error: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// Resolve fetches metadata for one track id.
//
// Calls GET /tracks/{id}.
func (s *SoundCloud) Resolve(ctx context.Context, mediaID string) (Hit, error) {
	var track soundcloudTrack
	if err := s.doRequest(ctx, "/tracks/"+url.PathEscape(mediaID), &track); err != nil {
		return Hit{}, err
	}

	if track.ID == 0 {
		return Hit{}, fmt.Errorf("%w: track %s", shared.ErrResolutionFailed, mediaID)
	}

	return s.hit(track), nil
}

// Search returns one page of track results for query.
//
// Calls GET /tracks with a q filter and offset paging.
func (s *SoundCloud) Search(ctx context.Context, query string, page int) ([]Hit, error) {
	endpoint := "/tracks?q=" + url.QueryEscape(query) +
		"&limit=" + strconv.Itoa(soundcloudPageSize) +
		"&offset=" + strconv.Itoa(page*soundcloudPageSize)

	var tracks []soundcloudTrack
	if err := s.doRequest(ctx, endpoint, &tracks); err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, len(tracks))
	for _, track := range tracks {
		hits = append(hits, s.hit(track))
	}
	return hits, nil
}

func (s *SoundCloud) hit(track soundcloudTrack) Hit {
	return Hit{
		MediaID:  strconv.FormatInt(track.ID, 10),
		Title:    track.Title,
		Author:   track.User.Username,
		Duration: track.DurationMS / 1000,
		URL:      track.PermalinkURL,
	}
}
