// package providers defines the provider capability registry for external
// media sources.
//
// A provider is identified by a short code ("ytv" for YouTube videos, "sct"
// for SoundCloud tracks) and exposes two capabilities: resolving a media id to
// raw metadata and searching by query. Adding a provider is a registration
// call against [Registry], not a new code branch.
package providers

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/retardedwizard/muxamp/internal/models"
)

// Hit is a provider-neutral raw search or resolve result, before it has been
// typed into a [models.Track].
type Hit struct {
	MediaID  string
	Title    string
	Author   string
	Duration int // seconds
	URL      string
}

// Provider exposes one external media source's resolution and search
// capabilities. Implementations own their wire formats and rate limiting.
type Provider interface {
	// Code returns the provider's short identifying tag.
	Code() string

	// Resolve fetches raw metadata for a single media id.
	Resolve(ctx context.Context, mediaID string) (Hit, error)

	// Search returns raw results for a query, one provider-defined page at a
	// time. Page numbering starts at zero.
	Search(ctx context.Context, query string, page int) ([]Hit, error)
}

// Counter issues monotonically increasing ordinals for track list identity.
// A counter is scoped to one resolution session, not process lifetime, so
// numbering stays deterministic and testable.
type Counter struct {
	n atomic.Int64
}

// Next returns the next ordinal, starting at 1.
func (c *Counter) Next() int {
	return int(c.n.Add(1))
}

// Registry maps provider codes to their capabilities.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds a provider under its code, replacing any previous
// registration for that code.
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.providers[p.Code()] = p
}

// Lookup returns the provider registered under code.
func (r *Registry) Lookup(code string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[code]
	return p, ok
}

// Codes returns the registered provider codes.
func (r *Registry) Codes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codes := make([]string, 0, len(r.providers))
	for code := range r.providers {
		codes = append(codes, code)
	}
	return codes
}

// Track constructs a typed [models.Track] from a raw hit, assigning the next
// ordinal from counter. Returns false when code is not a registered provider;
// the caller skips that entry rather than failing its batch.
func (r *Registry) Track(code string, hit Hit, counter *Counter) (models.Track, bool) {
	if _, ok := r.Lookup(code); !ok {
		return models.Track{}, false
	}

	return models.Track{
		Ordinal:  counter.Next(),
		Provider: code,
		MediaID:  hit.MediaID,
		Title:    hit.Title,
		Author:   hit.Author,
		Duration: hit.Duration,
		URL:      hit.URL,
	}, true
}
