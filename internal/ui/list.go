package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/retardedwizard/muxamp/internal/models"
)

var _ list.Item = trackItem{}

// trackItem wraps [models.Track] to implement [list.Item].
type trackItem struct {
	track   models.Track
	playing bool
}

func (i trackItem) FilterValue() string { return i.track.Title }

func (i trackItem) Title() string {
	title := fmt.Sprintf("%d. %s", i.track.Ordinal, i.track.Title)
	if i.playing {
		title = styles.ok.Render("▶ ") + title
	}
	return title
}

func (i trackItem) Description() string {
	desc := i.track.Author
	if desc == "" {
		desc = i.track.Key()
	}
	if i.track.Duration > 0 {
		desc = fmt.Sprintf("%s • %s", desc, formatDuration(i.track.Duration))
	}
	return desc
}

// formatDuration renders a track length in seconds as m:ss.
func formatDuration(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
