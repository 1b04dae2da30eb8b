package youtube

import (
	"errors"
	"testing"

	"github.com/desertthunder/modao/internal/shared"
)

func TestExtractVideoID(t *testing.T) {
	t.Run("Valid Forms", func(t *testing.T) {
		cases := map[string]string{
			"watch":        "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			"watch extra":  "https://www.youtube.com/watch?list=PL123&v=dQw4w9WgXcQ",
			"embed":        "https://www.youtube.com/embed/dQw4w9WgXcQ",
			"v path":       "https://www.youtube.com/v/dQw4w9WgXcQ",
			"short":        "https://youtu.be/dQw4w9WgXcQ",
			"no scheme":    "youtube.com/watch?v=dQw4w9WgXcQ",
			"short params": "https://youtu.be/dQw4w9WgXcQ?t=42",
		}

		for name, url := range cases {
			t.Run(name, func(t *testing.T) {
				id, err := ExtractVideoID(url)
				if err != nil {
					t.Fatalf("expected no error for %s, got %v", url, err)
				}
				if id != "dQw4w9WgXcQ" {
					t.Errorf("expected dQw4w9WgXcQ, got %s", id)
				}
			})
		}
	})

	t.Run("Invalid Input", func(t *testing.T) {
		cases := map[string]string{
			"empty":        "",
			"not a url":    "hello world",
			"wrong domain": "https://vimeo.com/watch?v=dQw4w9WgXcQ",
			"short id":     "https://youtu.be/short",
			"no id":        "https://www.youtube.com/watch",
		}

		for name, url := range cases {
			t.Run(name, func(t *testing.T) {
				if _, err := ExtractVideoID(url); !errors.Is(err, shared.ErrInvalidURL) {
					t.Errorf("expected ErrInvalidURL for %q, got %v", url, err)
				}
			})
		}
	})

	t.Run("IsValidURL", func(t *testing.T) {
		if !IsValidURL("https://youtu.be/dQw4w9WgXcQ") {
			t.Error("expected valid URL to be accepted")
		}
		if IsValidURL("") {
			t.Error("expected empty URL to be rejected")
		}
	})
}

func TestThumbnails(t *testing.T) {
	t.Run("ThumbnailURL", func(t *testing.T) {
		want := "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg"
		if got := ThumbnailURL("dQw4w9WgXcQ"); got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("ThumbnailFromURL", func(t *testing.T) {
		thumb, err := ThumbnailFromURL("https://youtu.be/dQw4w9WgXcQ")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if thumb != "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg" {
			t.Errorf("unexpected thumbnail URL: %s", thumb)
		}
	})

	t.Run("ThumbnailFromURL Invalid", func(t *testing.T) {
		if _, err := ThumbnailFromURL("not-a-url"); !errors.Is(err, shared.ErrInvalidURL) {
			t.Errorf("expected ErrInvalidURL, got %v", err)
		}
	})
}
