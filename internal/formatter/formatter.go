// package formatter provides functions to export catalog data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/desertthunder/modao/internal/models"
)

// FormatViews renders a view count the way the board displays it:
// 2_300_000 -> "2.3M", 1_500 -> "1.5K", below a thousand verbatim.
func FormatViews(views int64) string {
	switch {
	case views >= 1_000_000:
		return trimUnit(float64(views)/1_000_000, "M")
	case views >= 1_000:
		return trimUnit(float64(views)/1_000, "K")
	default:
		return strconv.FormatInt(views, 10)
	}
}

// trimUnit formats with one decimal place, dropping a trailing ".0".
func trimUnit(value float64, unit string) string {
	s := strconv.FormatFloat(value, 'f', 1, 64)
	if len(s) > 2 && s[len(s)-2:] == ".0" {
		s = s[:len(s)-2]
	}
	return s + unit
}

// ExportToCSV converts a catalog listing to CSV format with columns: ID, Title, Views, URL, Position
func ExportToCSV(musics []models.Music) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Views", "URL", "Position"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, music := range musics {
		record := []string{
			strconv.FormatInt(music.RemoteID, 10),
			music.Title,
			strconv.FormatInt(music.Views, 10),
			music.YouTubeURL,
			strconv.Itoa(music.Position),
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

// ExportToMarkdown converts a catalog listing to Markdown format
func ExportToMarkdown(musics []models.Music, title string) ([]byte, error) {
	var buf bytes.Buffer

	if title == "" {
		title = "Catálogo"
	}

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Músicas**: %d\n\n", len(musics)))

	for i, music := range musics {
		buf.WriteString(fmt.Sprintf("%d. [%s](%s) — %s views\n", i+1, music.Title, music.YouTubeURL, FormatViews(music.Views)))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a catalog listing to plain text format
func ExportToText(musics []models.Music) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Músicas: %d\n\n", len(musics)))

	for i, music := range musics {
		buf.WriteString(fmt.Sprintf("%d. %s (%s views)\n   %s\n", i+1, music.Title, FormatViews(music.Views), music.YouTubeURL))
	}

	return buf.Bytes(), nil
}

// ExportResult contains the path of the file created by WriteExport
type ExportResult struct {
	File   string
	Format string
}

// WriteExport exports a catalog listing to the given format ("csv", "md", or "txt").
//
// Defaults to a date-stamped base filename when basePath is empty.
func WriteExport(musics []models.Music, format, basePath string) (*ExportResult, error) {
	if basePath == "" {
		basePath = fmt.Sprintf("catalogo_%s", time.Now().Format("2006-01-02"))
	}

	var (
		data []byte
		err  error
		ext  string
	)

	switch format {
	case "csv", "":
		data, err = ExportToCSV(musics)
		ext = ".csv"
		format = "csv"
	case "md", "markdown":
		data, err = ExportToMarkdown(musics, "")
		ext = ".md"
		format = "md"
	case "txt", "text":
		data, err = ExportToText(musics)
		ext = ".txt"
		format = "txt"
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to generate export: %w", err)
	}

	file := basePath + ext
	if err := os.WriteFile(file, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write export file: %w", err)
	}

	return &ExportResult{File: file, Format: format}, nil
}
