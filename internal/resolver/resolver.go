// Package resolver turns an ordered sequence of (provider code, media id)
// pairs into an ordered sequence of resolved tracks.
//
// All cache misses for one batch are dispatched concurrently and the call
// joins on the whole batch; results land in index-addressed slots so output
// order always equals input order no matter which resolution finishes first.
// A failed resolution drops its slot rather than failing the batch. Duplicate
// references within a batch are coalesced into a single provider call, and
// successes are written to a TTL cache so repeat resolutions inside the
// configured window cost nothing.
package resolver

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/retardedwizard/muxamp/internal/cache"
	"github.com/retardedwizard/muxamp/internal/codec"
	"github.com/retardedwizard/muxamp/internal/models"
	"github.com/retardedwizard/muxamp/internal/providers"
	"github.com/retardedwizard/muxamp/internal/shared"
)

// Result carries the ordered successes of one batch plus the number of
// entries that were dropped. The track list is valid regardless of failures.
type Result struct {
	Tracks []models.Track `json:"tracks"`
	Failed int            `json:"failed"`
}

// Resolver resolves playlist references through the provider registry,
// de-duplicating via a TTL cache of raw provider metadata. Ordinals are
// assigned from a counter scoped to each call, in input order, after the
// batch has settled.
type Resolver struct {
	registry *providers.Registry
	cache    *cache.Cache[providers.Hit]
	logger   *log.Logger
}

// New creates a resolver. The cache holds raw provider hits keyed by
// "code:mediaID"; values for a fixed key are immutable, so concurrent
// last-write-wins puts are harmless.
func New(registry *providers.Registry, c *cache.Cache[providers.Hit], logger *log.Logger) *Resolver {
	return &Resolver{
		registry: registry,
		cache:    c,
		logger:   shared.WithLogger(logger, "component", "resolver"),
	}
}

// pending tracks one distinct cache-missed reference and every input slot
// that asked for it.
type pending struct {
	code    string
	mediaID string
	slots   []int
}

// ResolveAll resolves pairs in order. The call returns once every dispatched
// resolution has settled: success, failure, or cache hit.
func (r *Resolver) ResolveAll(ctx context.Context, pairs []codec.Pair) Result {
	slots := make([]*providers.Hit, len(pairs))
	misses := map[string]*pending{}

	for i, pair := range pairs {
		key := pair.Key + ":" + pair.Value

		if hit, ok := r.cache.Get(key); ok {
			slots[i] = &hit
			continue
		}

		if _, ok := r.registry.Lookup(pair.Key); !ok {
			r.logger.Warn("skipping unknown provider code", "code", pair.Key)
			continue
		}

		if miss, ok := misses[key]; ok {
			miss.slots = append(miss.slots, i)
		} else {
			misses[key] = &pending{code: pair.Key, mediaID: pair.Value, slots: []int{i}}
		}
	}

	var wg sync.WaitGroup
	for key, miss := range misses {
		wg.Add(1)
		go func(key string, miss *pending) {
			defer wg.Done()

			provider, _ := r.registry.Lookup(miss.code)
			hit, err := provider.Resolve(ctx, miss.mediaID)
			if err != nil {
				r.logger.Warn("resolution failed", "code", miss.code, "mediaID", miss.mediaID, "error", err)
				return
			}

			r.cache.Put(key, hit)
			for _, i := range miss.slots {
				h := hit
				slots[i] = &h
			}
		}(key, miss)
	}
	wg.Wait()

	counter := &providers.Counter{}
	result := Result{Tracks: make([]models.Track, 0, len(pairs))}
	for i, pair := range pairs {
		if slots[i] == nil {
			result.Failed++
			continue
		}
		track, ok := r.registry.Track(pair.Key, *slots[i], counter)
		if !ok {
			result.Failed++
			continue
		}
		result.Tracks = append(result.Tracks, track)
	}

	return result
}

// Search runs a provider search and types the raw hits, assigning ordinals
// from a fresh counter. Unknown provider codes fail with
// [shared.ErrUnknownProvider].
func (r *Resolver) Search(ctx context.Context, code, query string, page int) ([]models.Track, error) {
	provider, ok := r.registry.Lookup(code)
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrUnknownProvider, code)
	}

	hits, err := provider.Search(ctx, query, page)
	if err != nil {
		return nil, fmt.Errorf("search failed for %s: %w", code, err)
	}

	counter := &providers.Counter{}
	tracks := make([]models.Track, 0, len(hits))
	for _, hit := range hits {
		if track, ok := r.registry.Track(code, hit, counter); ok {
			tracks = append(tracks, track)
		}
	}
	return tracks, nil
}
