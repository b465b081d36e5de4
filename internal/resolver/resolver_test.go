package resolver

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/retardedwizard/muxamp/internal/cache"
	"github.com/retardedwizard/muxamp/internal/codec"
	"github.com/retardedwizard/muxamp/internal/providers"
	"github.com/retardedwizard/muxamp/internal/shared"
	muxtest "github.com/retardedwizard/muxamp/internal/testing"
)

func newResolver(t *testing.T, mocks ...*muxtest.MockProvider) (*Resolver, *cache.Cache[providers.Hit]) {
	t.Helper()

	registry := providers.NewRegistry()
	for _, mock := range mocks {
		registry.Register(mock)
	}

	c := cache.New[providers.Hit](time.Minute, time.Minute)
	t.Cleanup(c.Stop)

	return New(registry, c, shared.NewLogger(io.Discard)), c
}

func pairs(kv ...string) []codec.Pair {
	out := []codec.Pair{}
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, codec.Pair{Key: kv[i], Value: kv[i+1]})
	}
	return out
}

func TestResolveAll(t *testing.T) {
	t.Run("OrderedMixedProviders", func(t *testing.T) {
		yt := muxtest.NewMockProvider("ytv").Add("abc123", "First").Add("def456", "Third")
		sc := muxtest.NewMockProvider("sct").Add("xyz789", "Second")
		r, _ := newResolver(t, yt, sc)

		result := r.ResolveAll(context.Background(), pairs("ytv", "abc123", "sct", "xyz789", "ytv", "def456"))

		if result.Failed != 0 {
			t.Fatalf("expected no failures, got %d", result.Failed)
		}
		titles := []string{}
		for _, track := range result.Tracks {
			titles = append(titles, track.Title)
		}
		if len(titles) != 3 || titles[0] != "First" || titles[1] != "Second" || titles[2] != "Third" {
			t.Errorf("expected input order preserved, got %v", titles)
		}
	})

	t.Run("OrderInvariantUnderLatency", func(t *testing.T) {
		yt := muxtest.NewMockProvider("ytv").Add("m0", "r0").Add("m1", "r1").Add("m2", "r2")
		// m1 settles first, m0 last.
		yt.Delays["m0"] = 60 * time.Millisecond
		yt.Delays["m2"] = 30 * time.Millisecond
		r, _ := newResolver(t, yt)

		result := r.ResolveAll(context.Background(), pairs("ytv", "m0", "ytv", "m1", "ytv", "m2"))

		if len(result.Tracks) != 3 {
			t.Fatalf("expected 3 tracks, got %d", len(result.Tracks))
		}
		for i, want := range []string{"r0", "r1", "r2"} {
			if result.Tracks[i].Title != want {
				t.Errorf("slot %d: expected %s, got %s", i, want, result.Tracks[i].Title)
			}
		}
	})

	t.Run("PartialFailureShrinksResult", func(t *testing.T) {
		yt := muxtest.NewMockProvider("ytv").Add("m0", "r0").Add("m2", "r2")
		r, _ := newResolver(t, yt)

		result := r.ResolveAll(context.Background(), pairs("ytv", "m0", "ytv", "m1", "ytv", "m2"))

		if result.Failed != 1 {
			t.Errorf("expected one failure, got %d", result.Failed)
		}
		if len(result.Tracks) != 2 || result.Tracks[0].Title != "r0" || result.Tracks[1].Title != "r2" {
			t.Errorf("expected [r0 r2], got %v", result.Tracks)
		}
	})

	t.Run("UnknownProviderSlotDropped", func(t *testing.T) {
		yt := muxtest.NewMockProvider("ytv").Add("m0", "r0")
		r, _ := newResolver(t, yt)

		result := r.ResolveAll(context.Background(), pairs("bogus", "m0", "ytv", "m0"))

		if result.Failed != 1 || len(result.Tracks) != 1 {
			t.Errorf("expected unknown code skipped, got %+v", result)
		}
	})

	t.Run("CacheHitSkipsProviderCall", func(t *testing.T) {
		yt := muxtest.NewMockProvider("ytv").Add("m0", "r0")
		r, _ := newResolver(t, yt)

		r.ResolveAll(context.Background(), pairs("ytv", "m0"))
		r.ResolveAll(context.Background(), pairs("ytv", "m0"))

		if got := yt.Calls("m0"); got != 1 {
			t.Errorf("expected exactly one provider call inside the TTL window, got %d", got)
		}
	})

	t.Run("BatchCoalescesDuplicates", func(t *testing.T) {
		yt := muxtest.NewMockProvider("ytv").Add("m0", "r0")
		r, _ := newResolver(t, yt)

		result := r.ResolveAll(context.Background(), pairs("ytv", "m0", "ytv", "m0", "ytv", "m0"))

		if got := yt.Calls("m0"); got != 1 {
			t.Errorf("expected duplicates coalesced to one call, got %d", got)
		}
		if len(result.Tracks) != 3 {
			t.Errorf("expected all three slots filled, got %d", len(result.Tracks))
		}
	})

	t.Run("OrdinalsFollowInputOrder", func(t *testing.T) {
		yt := muxtest.NewMockProvider("ytv").Add("m0", "r0").Add("m1", "r1")
		yt.Delays["m0"] = 30 * time.Millisecond
		r, _ := newResolver(t, yt)

		result := r.ResolveAll(context.Background(), pairs("ytv", "m0", "ytv", "m1"))

		if result.Tracks[0].Ordinal != 1 || result.Tracks[1].Ordinal != 2 {
			t.Errorf("expected ordinals 1,2 in input order, got %d,%d",
				result.Tracks[0].Ordinal, result.Tracks[1].Ordinal)
		}
	})

	t.Run("EmptyInput", func(t *testing.T) {
		r, _ := newResolver(t)
		result := r.ResolveAll(context.Background(), nil)
		if len(result.Tracks) != 0 || result.Failed != 0 {
			t.Errorf("expected empty result, got %+v", result)
		}
	})

	t.Run("SuccessesWrittenToCache", func(t *testing.T) {
		yt := muxtest.NewMockProvider("ytv").Add("m0", "r0")
		r, c := newResolver(t, yt)

		r.ResolveAll(context.Background(), pairs("ytv", "m0"))

		if _, ok := c.Get("ytv:m0"); !ok {
			t.Error("expected resolved hit in cache")
		}
	})
}

func TestSearch(t *testing.T) {
	t.Run("TypesHits", func(t *testing.T) {
		yt := muxtest.NewMockProvider("ytv").Add("m0", "r0")
		r, _ := newResolver(t, yt)

		tracks, err := r.Search(context.Background(), "ytv", "query", 0)
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		if len(tracks) != 1 || tracks[0].Provider != "ytv" {
			t.Errorf("unexpected tracks %v", tracks)
		}
	})

	t.Run("UnknownProvider", func(t *testing.T) {
		r, _ := newResolver(t)
		if _, err := r.Search(context.Background(), "bogus", "query", 0); err == nil {
			t.Error("expected error for unknown provider")
		}
	})
}
