// YouTube video [Provider] implementation.
//
// Communicates with the muxamp media proxy, which wraps the YouTube Data API
// and normalizes responses to a flat JSON shape.
package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/retardedwizard/muxamp/internal/shared"
	"golang.org/x/time/rate"
)

// CodeYouTube is the provider code for YouTube videos.
const CodeYouTube = "ytv"

const defaultYouTubeBaseURL = "http://localhost:8080"

// youtubeVideo is the proxy's normalized video shape.
type youtubeVideo struct {
	VideoID     string `json:"videoId"`
	Title       string `json:"title"`
	Channel     string `json:"channel"`
	DurationSec int    `json:"duration_seconds"`
	URL         string `json:"url"`
}

// YouTube implements [Provider] for YouTube videos via the media proxy.
type YouTube struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewYouTube creates a YouTube provider client. cfg.RateLimit bounds calls to
// the proxy in requests per second; zero or negative disables the limit.
func NewYouTube(cfg shared.ProviderConfig, client *http.Client) *YouTube {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultYouTubeBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	return &YouTube{
		baseURL:    baseURL,
		httpClient: client,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// Code returns the provider code.
func (y *YouTube) Code() string { return CodeYouTube }

func (y *YouTube) doRequest(ctx context.Context, endpoint string, result any) error {
	if err := y.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, y.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %v", shared.ErrTimeout, err)
		}
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("youtube proxy error: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// Resolve fetches metadata for one video id.
//
// Calls GET /api/videos/{id} on the proxy.
func (y *YouTube) Resolve(ctx context.Context, mediaID string) (Hit, error) {
	var video youtubeVideo
	if err := y.doRequest(ctx, "/api/videos/"+url.PathEscape(mediaID), &video); err != nil {
		return Hit{}, err
	}

	if video.VideoID == "" {
		return Hit{}, fmt.Errorf("%w: video %s", shared.ErrResolutionFailed, mediaID)
	}

	return y.hit(video), nil
}

// Search returns one page of video results for query.
//
// Calls GET /api/search on the proxy.
func (y *YouTube) Search(ctx context.Context, query string, page int) ([]Hit, error) {
	endpoint := "/api/search?q=" + url.QueryEscape(query) + "&page=" + strconv.Itoa(page)

	var videos []youtubeVideo
	if err := y.doRequest(ctx, endpoint, &videos); err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, len(videos))
	for _, video := range videos {
		hits = append(hits, y.hit(video))
	}
	return hits, nil
}

func (y *YouTube) hit(video youtubeVideo) Hit {
	permalink := video.URL
	if permalink == "" {
		permalink = "https://www.youtube.com/watch?v=" + url.QueryEscape(video.VideoID)
	}

	return Hit{
		MediaID:  video.VideoID,
		Title:    video.Title,
		Author:   video.Channel,
		Duration: video.DurationSec,
		URL:      permalink,
	}
}
