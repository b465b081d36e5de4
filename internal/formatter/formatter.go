// package formatter provides functions to export resolved playlists to various formats (JSON, CSV, Markdown)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/retardedwizard/muxamp/internal/models"
)

// Export bundles a resolved playlist with its shareable identity for the
// file formats that carry metadata.
type Export struct {
	ID          string
	QueryString string
	Tracks      []models.Track
}

// ExportToJSON converts an export to indented JSON.
func ExportToJSON(export *Export) ([]byte, error) {
	payload := struct {
		ID          string         `json:"id,omitempty"`
		QueryString string         `json:"queryString"`
		Tracks      []models.Track `json:"tracks"`
	}{export.ID, export.QueryString, export.Tracks}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to generate JSON: %w", err)
	}
	return data, nil
}

// ExportToCSV converts an export to CSV format with columns: Ordinal, Provider, MediaID, Title, Author, Duration, URL
func ExportToCSV(export *Export) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Ordinal", "Provider", "MediaID", "Title", "Author", "Duration", "URL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range export.Tracks {
		record := []string{
			strconv.Itoa(track.Ordinal),
			track.Provider,
			track.MediaID,
			track.Title,
			track.Author,
			strconv.Itoa(track.Duration),
			track.URL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts an export to a Markdown track listing.
func ExportToMarkdown(export *Export) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Playlist\n\n")
	if export.ID != "" {
		buf.WriteString(fmt.Sprintf("**ID**: %s\n", export.ID))
	}
	buf.WriteString(fmt.Sprintf("**Contents**: `%s`\n", export.QueryString))
	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n\n", len(export.Tracks)))

	buf.WriteString("## Tracks\n\n")
	for _, track := range export.Tracks {
		duration := fmt.Sprintf("%d:%02d", track.Duration/60, track.Duration%60)
		line := fmt.Sprintf("%d. %s - %s [%s]", track.Ordinal, track.Author, track.Title, duration)
		if track.URL != "" {
			line = fmt.Sprintf("%d. [%s - %s](%s) [%s]", track.Ordinal, track.Author, track.Title, track.URL, duration)
		}
		buf.WriteString(line + "\n")
	}

	return buf.Bytes(), nil
}

// WriteExport renders the export in the named format (json, csv, or
// markdown) and writes it to filepath. An empty filepath derives a name
// from the playlist id.
func WriteExport(export *Export, format, filepath string) (string, error) {
	base := export.ID
	if base == "" {
		base = "playlist"
	}

	var data []byte
	var err error
	switch format {
	case "json":
		data, err = ExportToJSON(export)
		if filepath == "" {
			filepath = base + ".json"
		}
	case "csv":
		data, err = ExportToCSV(export)
		if filepath == "" {
			filepath = base + "_tracks.csv"
		}
	case "markdown", "md":
		data, err = ExportToMarkdown(export)
		if filepath == "" {
			filepath = base + ".md"
		}
	default:
		return "", fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return filepath, nil
}
