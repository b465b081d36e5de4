package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/retardedwizard/muxamp/internal/models"
	"github.com/retardedwizard/muxamp/internal/navigator"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	InputView ViewState = iota
	TrackListView
)

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	view       ViewState
	sync       *navigator.Synchronizer
	bridge     *Bridge
	input      textinput.Model
	trackList  list.Model
	tracks     []models.Track
	nowPlaying int
	fragment   string
	busy       bool
	err        error
	width      int
	height     int
	help       help.Model
	keys       keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, sync *navigator.Synchronizer, bridge *Bridge) *Model {
	input := textinput.New()
	input.Placeholder = "ytv=dQw4w9WgXcQ&sct=13158665"
	input.SetValue(bridge.Fragment())
	input.Focus()

	return &Model{
		ctx:        ctx,
		view:       InputView,
		sync:       sync,
		bridge:     bridge,
		input:      input,
		nowPlaying: -1,
		fragment:   bridge.Fragment(),
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init kicks off the initial load when a playlist link was provided.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.fragment != "" {
		m.busy = true
		cmds = append(cmds, func() tea.Msg {
			m.sync.Start(m.ctx)
			return nil
		})
	}
	return tea.Batch(cmds...)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.trackList.Width() == 0 {
			m.trackList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case InputView:
			return m.handleInputKeys(msg)
		case TrackListView:
			return m.handleTrackListKeys(msg)
		}

	case tracksInstalledMsg:
		m.tracks = msg.tracks
		m.nowPlaying = 0
		m.busy = false
		m.err = nil
		m.trackList = list.New(m.items(), list.NewDefaultDelegate(), 0, 0)
		m.trackList.Title = fmt.Sprintf("Playlist (%d tracks)", len(msg.tracks))
		m.trackList.SetSize(m.width-4, m.height-8)
		m.view = TrackListView
		return m, nil

	case loadErrorMsg:
		m.err = msg.err
		m.busy = false
		m.view = InputView
		return m, nil

	case busyClearedMsg:
		m.busy = false
		return m, nil

	case fragmentChangedMsg:
		m.fragment = msg.fragment
		return m, nil
	}

	if m.view == TrackListView {
		var cmd tea.Cmd
		m.trackList, cmd = m.trackList.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case InputView:
		return m.renderInput()
	case TrackListView:
		return m.renderTrackList()
	default:
		return ""
	}
}

func (m *Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if len(m.tracks) > 0 {
			m.view = TrackListView
			return m, nil
		}
		return m, tea.Quit
	case "enter":
		fragment := strings.TrimSpace(m.input.Value())
		if fragment == "" {
			return m, nil
		}
		m.busy = true
		m.err = nil
		m.bridge.SetFragment(fragment)
		m.sync.LoadAsync(m.ctx, "", fragment)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleTrackListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = InputView
		return m, nil
	case "enter":
		index := m.trackList.Index()
		m.nowPlaying = index
		m.sync.SetCurrentTrack(index)
		m.trackList.SetItems(m.items())
		return m, nil
	}

	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

func (m *Model) items() []list.Item {
	items := make([]list.Item, len(m.tracks))
	for i, track := range m.tracks {
		items[i] = trackItem{track: track, playing: i == m.nowPlaying}
	}
	return items
}

func (m *Model) renderInput() string {
	title := styles.title.Render("muxamp")
	prompt := "Paste a playlist link:"

	var status string
	if m.busy {
		status = styles.warn.Render("Resolving playlist...")
	} else if m.err != nil {
		status = styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s\n\n%s", title, prompt, m.input.View(), status, helpView)
}

func (m *Model) renderTrackList() string {
	var playing string
	if m.nowPlaying >= 0 && m.nowPlaying < len(m.tracks) {
		playing = styles.ok.Render(fmt.Sprintf("▶ %s", m.tracks[m.nowPlaying].Title))
	}
	status := fmt.Sprintf("%s\n%s", playing, styles.help.Render(m.fragment))

	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n\n%s\n%s", m.trackList.View(), status, helpView)
}

// Run starts the TUI program and blocks until it exits.
func Run(ctx context.Context, sync *navigator.Synchronizer, bridge *Bridge) error {
	model := NewModel(ctx, sync, bridge)
	program := tea.NewProgram(model, tea.WithAltScreen())
	bridge.Attach(program)

	_, err := program.Run()
	return err
}
