// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/retardedwizard/muxamp/internal/providers"
)

// MockProvider is a configurable test double for [providers.Provider].
//
// Hits maps media ids to canned results; ids not in the map fail with
// FailErr. Delay, when set per id, is slept before returning so tests can
// force out-of-order completion. Calls are counted per media id.
type MockProvider struct {
	ProviderCode string
	Hits         map[string]providers.Hit
	Delays       map[string]time.Duration
	FailErr      error

	mu    sync.Mutex
	calls map[string]int
}

func NewMockProvider(code string) *MockProvider {
	return &MockProvider{
		ProviderCode: code,
		Hits:         map[string]providers.Hit{},
		Delays:       map[string]time.Duration{},
		FailErr:      errors.New("mock resolution failure"),
		calls:        map[string]int{},
	}
}

// Add registers a canned hit for mediaID.
func (m *MockProvider) Add(mediaID, title string) *MockProvider {
	m.Hits[mediaID] = providers.Hit{
		MediaID: mediaID,
		Title:   title,
		Author:  "author of " + mediaID,
		URL:     fmt.Sprintf("https://example.com/%s/%s", m.ProviderCode, mediaID),
	}
	return m
}

func (m *MockProvider) Code() string { return m.ProviderCode }

func (m *MockProvider) Resolve(ctx context.Context, mediaID string) (providers.Hit, error) {
	m.mu.Lock()
	m.calls[mediaID]++
	m.mu.Unlock()

	if delay, ok := m.Delays[mediaID]; ok {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return providers.Hit{}, ctx.Err()
		}
	}

	hit, ok := m.Hits[mediaID]
	if !ok {
		return providers.Hit{}, m.FailErr
	}
	return hit, nil
}

func (m *MockProvider) Search(ctx context.Context, query string, page int) ([]providers.Hit, error) {
	hits := []providers.Hit{}
	for _, hit := range m.Hits {
		hits = append(hits, hit)
	}
	return hits, nil
}

// Calls returns how many times Resolve was invoked for mediaID.
func (m *MockProvider) Calls(mediaID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[mediaID]
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}
