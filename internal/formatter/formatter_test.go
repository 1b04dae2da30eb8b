package formatter

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/modao/internal/models"
	mocks "github.com/desertthunder/modao/internal/testing"
)

func catalogFixture() []models.Music {
	return []models.Music{
		{RemoteID: 1, Title: "Primeira", Views: 2300000, YouTubeURL: "https://youtu.be/dQw4w9WgXcQ", Position: 1},
		{RemoteID: 2, Title: "Segunda", Views: 1500, YouTubeURL: "https://youtu.be/jNQXAC9IVRw", Position: 2},
		{RemoteID: 3, Title: "Terceira", Views: 999, YouTubeURL: "https://youtu.be/9bZkp7q19f0", Position: 3},
	}
}

func TestFormatViews(t *testing.T) {
	tests := []struct {
		views    int64
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1K"},
		{1500, "1.5K"},
		{999999, "1000K"},
		{1000000, "1M"},
		{2300000, "2.3M"},
		{15000000, "15M"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FormatViews(tt.views); got != tt.expected {
				t.Errorf("FormatViews(%d) = %s, expected %s", tt.views, got, tt.expected)
			}
		})
	}
}

func TestExportToCSV(t *testing.T) {
	t.Run("includes headers and all rows", func(t *testing.T) {
		data, err := ExportToCSV(catalogFixture())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 4 {
			t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
		}
		if lines[0] != "ID,Title,Views,URL,Position" {
			t.Errorf("unexpected header: %s", lines[0])
		}
		if !strings.Contains(lines[1], "Primeira") || !strings.Contains(lines[1], "2300000") {
			t.Errorf("unexpected first row: %s", lines[1])
		}
	})

	t.Run("empty catalog yields headers only", func(t *testing.T) {
		data, err := ExportToCSV(nil)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}
		if strings.TrimSpace(string(data)) != "ID,Title,Views,URL,Position" {
			t.Errorf("expected headers only, got %q", string(data))
		}
	})
}

func TestExportToMarkdown(t *testing.T) {
	data, err := ExportToMarkdown(catalogFixture(), "Minha Lista")
	if err != nil {
		t.Fatalf("ExportToMarkdown failed: %v", err)
	}

	content := string(data)
	if !strings.HasPrefix(content, "# Minha Lista") {
		t.Errorf("expected title heading, got %q", content[:20])
	}
	if !strings.Contains(content, "**Músicas**: 3") {
		t.Error("expected music count line")
	}
	if !strings.Contains(content, "[Primeira](https://youtu.be/dQw4w9WgXcQ)") {
		t.Error("expected linked entry")
	}
	if !strings.Contains(content, "2.3M views") {
		t.Error("expected humanized view count")
	}
}

func TestExportToText(t *testing.T) {
	data, err := ExportToText(catalogFixture())
	if err != nil {
		t.Fatalf("ExportToText failed: %v", err)
	}

	content := string(data)
	if !strings.Contains(content, "Músicas: 3") {
		t.Error("expected music count line")
	}
	if !strings.Contains(content, "1. Primeira (2.3M views)") {
		t.Errorf("expected numbered entry, got %q", content)
	}
}

func TestWriteExport(t *testing.T) {
	t.Run("writes each supported format", func(t *testing.T) {
		dir := t.TempDir()

		for _, format := range []string{"csv", "md", "txt"} {
			result, err := WriteExport(catalogFixture(), format, filepath.Join(dir, "catalogo"))
			if err != nil {
				t.Fatalf("WriteExport(%s) failed: %v", format, err)
			}
			mocks.AssertFileExists(t, result.File)
			if result.Format != format {
				t.Errorf("expected format %s, got %s", format, result.Format)
			}
		}
	})

	t.Run("defaults to CSV", func(t *testing.T) {
		result, err := WriteExport(catalogFixture(), "", filepath.Join(t.TempDir(), "catalogo"))
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if result.Format != "csv" || !strings.HasSuffix(result.File, ".csv") {
			t.Errorf("expected CSV default, got %+v", result)
		}
	})

	t.Run("rejects unknown formats", func(t *testing.T) {
		if _, err := WriteExport(catalogFixture(), "xml", ""); err == nil {
			t.Error("expected error for unsupported format")
		}
	})
}
