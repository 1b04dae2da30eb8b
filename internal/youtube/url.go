// package youtube implements YouTube link validation and metadata enrichment.
//
// ExtractVideoID is the single canonical matcher for video IDs; every
// thumbnail or ID derivation in the application goes through this package.
package youtube

import (
	"fmt"
	"regexp"

	"github.com/desertthunder/modao/internal/shared"
)

// videoIDRegex accepts the canonical YouTube URL forms:
//
//	youtube.com/watch?v=ID, youtube.com/embed/ID, youtube.com/v/ID, youtu.be/ID
//
// where ID is exactly 11 characters of [A-Za-z0-9_-].
var videoIDRegex = regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|.*[?&]v=)|youtu\.be/)([A-Za-z0-9_-]{11})`)

// ExtractVideoID extracts the 11-character video ID from a YouTube URL.
// Returns [shared.ErrInvalidURL] for empty or unrecognized input.
func ExtractVideoID(url string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("%w: empty URL", shared.ErrInvalidURL)
	}

	match := videoIDRegex.FindStringSubmatch(url)
	if match == nil {
		return "", fmt.Errorf("%w: %s", shared.ErrInvalidURL, url)
	}

	return match[1], nil
}

// IsValidURL reports whether url contains an extractable video ID.
func IsValidURL(url string) bool {
	_, err := ExtractVideoID(url)
	return err == nil
}

// ThumbnailURL returns the deterministic high-resolution thumbnail for a video ID.
func ThumbnailURL(videoID string) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", videoID)
}

// ThumbnailFromURL derives the thumbnail URL for a YouTube link.
// Pure function, no network access.
func ThumbnailFromURL(url string) (string, error) {
	videoID, err := ExtractVideoID(url)
	if err != nil {
		return "", err
	}
	return ThumbnailURL(videoID), nil
}
