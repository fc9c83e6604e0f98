// package formatter provides functions to export the watchlist to various formats (CSV, Markdown, JSON, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/shared"
)

// Format names an export encoding.
type Format string

const (
	CSV      Format = "csv"
	Markdown Format = "markdown"
	JSON     Format = "json"
	Text     Format = "text"
)

// Formats lists every supported format in help-text order.
var Formats = []Format{CSV, Markdown, JSON, Text}

// ParseFormat accepts a format name or a common alias (md, txt).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return CSV, nil
	case "markdown", "md":
		return Markdown, nil
	case "json":
		return JSON, nil
	case "text", "txt", "":
		return Text, nil
	}
	return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, s)
}

// Extension returns the file extension conventionally used for f.
func (f Format) Extension() string {
	switch f {
	case CSV:
		return ".csv"
	case Markdown:
		return ".md"
	case JSON:
		return ".json"
	default:
		return ".txt"
	}
}

// Watchlist is the exported view of the movie list.
type Watchlist struct {
	Owner  string
	Movies []*models.Movie
}

// ExportToCSV converts the watchlist to CSV format with columns: ID, Title, Year, Added
func ExportToCSV(w Watchlist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Year", "Added"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, movie := range w.Movies {
		record := []string{
			strconv.FormatInt(movie.ID(), 10),
			movie.Title(),
			movie.Year(),
			movie.CreatedAt().UTC().Format(time.RFC3339),
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

// ExportToMarkdown converts the watchlist to a Markdown document with a numbered list
func ExportToMarkdown(w Watchlist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title(w)))
	buf.WriteString(fmt.Sprintf("**Titles**: %d\n\n", len(w.Movies)))

	buf.WriteString("## Movies\n\n")
	for i, movie := range w.Movies {
		buf.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, movie.Title(), movie.Year()))
	}

	return buf.Bytes(), nil
}

// ExportToText converts the watchlist to plain text format
func ExportToText(w Watchlist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s\n", title(w)))
	buf.WriteString(fmt.Sprintf("Titles: %d\n\n", len(w.Movies)))

	for i, movie := range w.Movies {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, movie.Title(), movie.Year()))
	}

	return buf.Bytes(), nil
}

type movieJSON struct {
	ID      int64     `json:"id"`
	Title   string    `json:"title"`
	Year    string    `json:"year"`
	Added   time.Time `json:"added"`
	Updated time.Time `json:"updated"`
}

type watchlistJSON struct {
	Owner  string      `json:"owner,omitempty"`
	Count  int         `json:"count"`
	Movies []movieJSON `json:"movies"`
}

// ExportToJSON converts the watchlist to indented JSON
func ExportToJSON(w Watchlist) ([]byte, error) {
	out := watchlistJSON{Owner: w.Owner, Count: len(w.Movies), Movies: make([]movieJSON, 0, len(w.Movies))}
	for _, movie := range w.Movies {
		out.Movies = append(out.Movies, movieJSON{
			ID:      movie.ID(),
			Title:   movie.Title(),
			Year:    movie.Year(),
			Added:   movie.CreatedAt().UTC(),
			Updated: movie.UpdatedAt().UTC(),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Export renders w in format f.
func Export(w Watchlist, f Format) ([]byte, error) {
	switch f {
	case CSV:
		return ExportToCSV(w)
	case Markdown:
		return ExportToMarkdown(w)
	case JSON:
		return ExportToJSON(w)
	case Text:
		return ExportToText(w)
	}
	return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, f)
}

// WriteExport renders w in format f to out.
func WriteExport(out io.Writer, w Watchlist, f Format) error {
	data, err := Export(w, f)
	if err != nil {
		return err
	}

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// WriteExportFile renders w in format f to path and returns the path written.
//
// An empty path defaults to watchlist{ext}.
func WriteExportFile(path string, w Watchlist, f Format) (string, error) {
	if path == "" {
		path = "watchlist" + f.Extension()
	}

	data, err := Export(w, f)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

func title(w Watchlist) string {
	if w.Owner == "" {
		return "Watchlist"
	}
	return fmt.Sprintf("%s's Watchlist", w.Owner)
}
