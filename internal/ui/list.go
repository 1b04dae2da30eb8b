package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/modao/internal/formatter"
	"github.com/desertthunder/modao/internal/models"
)

var (
	_ list.Item = suggestionItem{}
	_ list.Item = musicItem{}
)

// suggestionItem wraps [models.Suggestion] to implement [list.Item].
type suggestionItem struct {
	suggestion models.Suggestion
	status     string
}

func (i suggestionItem) FilterValue() string { return i.suggestion.Title }
func (i suggestionItem) Title() string {
	title := i.suggestion.Title
	if title == "" {
		title = i.suggestion.YouTubeURL
	}
	if i.status != "" {
		title = fmt.Sprintf("%s — %s", title, i.status)
	}
	return title
}
func (i suggestionItem) Description() string {
	return i.suggestion.YouTubeURL
}

// musicItem wraps [models.Music] to implement [list.Item].
type musicItem struct {
	music  models.Music
	status string
}

func (i musicItem) FilterValue() string { return i.music.Title }
func (i musicItem) Title() string {
	title := i.music.Title
	if i.status != "" {
		title = fmt.Sprintf("%s — %s", title, i.status)
	}
	return title
}
func (i musicItem) Description() string {
	return fmt.Sprintf("%s views • %s", formatter.FormatViews(i.music.Views), i.music.YouTubeURL)
}
