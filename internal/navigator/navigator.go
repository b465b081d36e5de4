// Package navigator keeps playback state, the current playlist id, and the
// address fragment consistent as the user acts.
//
// The synchronizer is a three-state machine (Idle, Loading, Loaded) with a
// single-flight guard: at most one load episode is active, navigation events
// arriving mid-load are dropped rather than queued, and a settled load is
// applied only when it is still the current one. While a load is in flight,
// automatic fragment updates from track-added events are suppressed so the
// act of loading cannot mutate the address it is loading from.
package navigator

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/retardedwizard/muxamp/internal/codec"
	"github.com/retardedwizard/muxamp/internal/models"
	"github.com/retardedwizard/muxamp/internal/resolver"
	"github.com/retardedwizard/muxamp/internal/shared"
)

// State is the synchronizer's lifecycle state.
type State int

const (
	Idle State = iota
	Loading
	Loaded
)

// String returns the state name for log output.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// NavigationState mirrors what the address mechanism knows: the saved
// playlist id (empty when the playlist is unsaved or has diverged) and the
// index of the current track (-1 when nothing is active).
type NavigationState struct {
	ID                string
	CurrentTrackIndex int
}

// Loader resolves decoded playlist references. Satisfied by
// [resolver.Resolver].
type Loader interface {
	ResolveAll(ctx context.Context, pairs []codec.Pair) resolver.Result
}

// Player is the playback engine boundary: it receives the resolved track
// list once a load settles successfully.
type Player interface {
	Install(tracks []models.Track)
}

// Location is the address-bar boundary.
type Location interface {
	Fragment() string
	SetFragment(fragment string)
}

// Notifier surfaces load outcomes to the user interface.
type Notifier interface {
	NotifyError(err error) // user-visible, non-fatal
	ClearBusy()            // dismiss any blocking loading indicator
}

// Synchronizer implements the navigation state machine.
type Synchronizer struct {
	mu       sync.Mutex
	state    State
	nav      NavigationState
	epoch    int
	suppress bool

	loader   Loader
	player   Player
	location Location
	notifier Notifier
	logger   *log.Logger
}

// New creates a synchronizer in the Idle state.
func New(loader Loader, player Player, location Location, notifier Notifier, logger *log.Logger) *Synchronizer {
	return &Synchronizer{
		state:    Idle,
		nav:      NavigationState{CurrentTrackIndex: -1},
		loader:   loader,
		player:   player,
		location: location,
		notifier: notifier,
		logger:   shared.WithLogger(logger, "component", "navigator"),
	}
}

// State returns the current lifecycle state.
func (s *Synchronizer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns a copy of the navigation state.
func (s *Synchronizer) Snapshot() NavigationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav
}

// Start performs the initial load when the current address encodes a
// non-empty playlist reference; otherwise it clears any busy indicator and
// stays Idle.
func (s *Synchronizer) Start(ctx context.Context) {
	fragment := s.location.Fragment()
	if len(codec.DecodeOrdered(fragment)) == 0 {
		s.notifier.ClearBusy()
		return
	}
	s.Load(ctx, "", fragment)
}

// HandleStateChange reacts to a navigation/history event carrying a playlist
// id and its encoded contents. Events arriving while a load is already in
// flight are dropped, not queued. Returns whether a load was started.
func (s *Synchronizer) HandleStateChange(ctx context.Context, id, fragment string) bool {
	s.mu.Lock()
	if s.state == Loading {
		s.mu.Unlock()
		s.logger.Debug("dropping navigation event during load", "id", id)
		return false
	}
	if id != "" && id == s.nav.ID {
		s.mu.Unlock()
		return false
	}
	s.mu.Unlock()

	s.Load(ctx, id, fragment)
	return true
}

// Load starts a load episode for the given id and encoded fragment,
// superseding any episode still in flight: the older batch is left to
// settle, but its result is discarded because it no longer matches the
// current epoch.
func (s *Synchronizer) Load(ctx context.Context, id, fragment string) {
	s.mu.Lock()
	s.state = Loading
	s.suppress = true
	s.epoch++
	epoch := s.epoch
	s.mu.Unlock()

	pairs := codec.DecodeOrdered(fragment)
	if len(pairs) == 0 {
		s.settle(epoch, id, resolver.Result{})
		return
	}

	result := s.loader.ResolveAll(ctx, pairs)
	s.settle(epoch, id, result)
}

// LoadAsync runs Load in a goroutine; the single-flight and staleness guards
// make this safe to fire from event handlers.
func (s *Synchronizer) LoadAsync(ctx context.Context, id, fragment string) {
	go s.Load(ctx, id, fragment)
}

// settle applies a load outcome if it is still the current episode.
func (s *Synchronizer) settle(epoch int, id string, result resolver.Result) {
	s.mu.Lock()

	if epoch != s.epoch {
		s.mu.Unlock()
		s.logger.Debug("discarding stale load result", "id", id)
		return
	}

	if len(result.Tracks) == 0 {
		s.state = Idle
		s.suppress = false
		s.mu.Unlock()
		s.notifier.NotifyError(shared.ErrEmptyPlaylist)
		s.notifier.ClearBusy()
		return
	}

	s.state = Loaded
	s.suppress = false
	s.nav.ID = id
	s.nav.CurrentTrackIndex = 0
	tracks := result.Tracks
	s.mu.Unlock()

	s.player.Install(tracks)
	s.notifier.ClearBusy()
	if result.Failed > 0 {
		s.logger.Warn("playlist loaded with missing tracks", "failed", result.Failed)
	}
}

// TrackAdded reflects a playback-engine "track added" event into the address
// fragment. Suppressed while a load is in flight or being applied; adding a
// track also detaches the state from any saved id, since the saved contents
// no longer match.
func (s *Synchronizer) TrackAdded(code, mediaID string) {
	s.mu.Lock()
	if s.suppress {
		s.mu.Unlock()
		return
	}
	s.nav.ID = ""
	s.mu.Unlock()

	s.location.SetFragment(codec.Append(s.location.Fragment(), code, mediaID))
}

// SetCurrentTrack records which track the playback engine is on.
func (s *Synchronizer) SetCurrentTrack(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.CurrentTrackIndex = index
}
