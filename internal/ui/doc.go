// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a two-view workflow for playing shared playlists:
//  1. [InputView] : Paste or edit an encoded playlist link
//  2. [TrackListView] : Browse the resolved tracks and pick the current one
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// The [Bridge] adapts the navigation synchronizer's callback boundaries
// (player, location, notifier) to bubbletea messages, so loads settled on
// other goroutines flow into the program through [tea.Program.Send].
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
