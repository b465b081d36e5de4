package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/retardedwizard/muxamp/internal/models"
)

type tracksInstalledMsg struct {
	tracks []models.Track
}

type loadErrorMsg struct {
	err error
}

type busyClearedMsg struct{}

type fragmentChangedMsg struct {
	fragment string
}

// sender is the subset of [tea.Program] the bridge needs; bubbletea models
// under test stand in for a running program.
type sender interface {
	Send(msg tea.Msg)
}

// Bridge adapts the navigation synchronizer's callback boundaries to
// bubbletea messages. The synchronizer settles loads on its own goroutines,
// so every callback is forwarded through [sender.Send] rather than touching
// the model directly.
//
// It also owns the current address fragment, standing in for a browser's
// location bar.
type Bridge struct {
	mu       sync.Mutex
	fragment string
	program  sender
}

// NewBridge creates a bridge seeded with an initial fragment, typically
// taken from the CLI arguments.
func NewBridge(fragment string) *Bridge {
	return &Bridge{fragment: fragment}
}

// Attach connects the bridge to a running program. Callbacks arriving
// before Attach are dropped.
func (b *Bridge) Attach(p sender) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.program = p
}

func (b *Bridge) send(msg tea.Msg) {
	b.mu.Lock()
	p := b.program
	b.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// Install hands the resolved track list to the view.
func (b *Bridge) Install(tracks []models.Track) {
	b.send(tracksInstalledMsg{tracks: tracks})
}

// Fragment returns the current address fragment.
func (b *Bridge) Fragment() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fragment
}

// SetFragment replaces the address fragment and tells the view so the
// status bar stays current.
func (b *Bridge) SetFragment(fragment string) {
	b.mu.Lock()
	b.fragment = fragment
	b.mu.Unlock()
	b.send(fragmentChangedMsg{fragment: fragment})
}

// NotifyError surfaces a non-fatal load failure.
func (b *Bridge) NotifyError(err error) {
	b.send(loadErrorMsg{err: err})
}

// ClearBusy dismisses the loading indicator.
func (b *Bridge) ClearBusy() {
	b.send(busyClearedMsg{})
}
