package models

import (
	"fmt"
	"time"
)

// Music is an approved catalog entry as served by the board API.
type Music struct {
	RemoteID   int64  `json:"id"`
	Title      string `json:"titulo"`
	Views      int64  `json:"visualizacoes"`
	YouTubeURL string `json:"youtube_url"`
	Thumbnail  string `json:"thumb,omitempty"`
	Position   int    `json:"posicao,omitempty"`
}

// MusicUpdate is the PATCH body for editing a catalog entry. The view count
// accompanies the derived metadata but the server's confirmed entry always
// replaces these values locally.
type MusicUpdate struct {
	YouTubeURL string `json:"youtube_url"`
	Title      string `json:"titulo"`
	Thumbnail  string `json:"thumb"`
	Views      int64  `json:"visualizacoes"`
}

// CachedMusic is a locally persisted snapshot of a catalog entry, written by
// `catalog sync` for offline listing and export.
type CachedMusic struct {
	id             string
	sequence       int
	remoteID       int64
	title          string
	youtubeURL     string
	videoID        string
	views          int64
	viewsEstimated bool
	position       int
	syncedAt       time.Time
	createdAt      time.Time
	updatedAt      time.Time
	deletedAt      *time.Time
}

// NewCachedMusic creates a cached catalog entry snapshot taken at syncedAt.
func NewCachedMusic(sequence int, remoteID int64, title, youtubeURL string, syncedAt time.Time) *CachedMusic {
	now := time.Now()
	return &CachedMusic{
		sequence:   sequence,
		remoteID:   remoteID,
		title:      title,
		youtubeURL: youtubeURL,
		syncedAt:   syncedAt,
		createdAt:  now,
		updatedAt:  now,
	}
}

func (m *CachedMusic) ID() string           { return m.id }
func (m *CachedMusic) Sequence() int        { return m.sequence }
func (m *CachedMusic) RemoteID() int64      { return m.remoteID }
func (m *CachedMusic) Title() string        { return m.title }
func (m *CachedMusic) YouTubeURL() string   { return m.youtubeURL }
func (m *CachedMusic) VideoID() string      { return m.videoID }
func (m *CachedMusic) Views() int64         { return m.views }
func (m *CachedMusic) ViewsEstimated() bool { return m.viewsEstimated }
func (m *CachedMusic) Position() int        { return m.position }
func (m *CachedMusic) SyncedAt() time.Time  { return m.syncedAt }
func (m *CachedMusic) CreatedAt() time.Time { return m.createdAt }
func (m *CachedMusic) UpdatedAt() time.Time { return m.updatedAt }
func (m *CachedMusic) DeletedAt() *time.Time {
	return m.deletedAt
}

func (m *CachedMusic) SetID(id string)             { m.id = id }
func (m *CachedMusic) SetVideoID(v string)         { m.videoID = v }
func (m *CachedMusic) SetViews(v int64)            { m.views = v }
func (m *CachedMusic) SetViewsEstimated(est bool)  { m.viewsEstimated = est }
func (m *CachedMusic) SetPosition(p int)           { m.position = p }
func (m *CachedMusic) SetSyncedAt(t time.Time)     { m.syncedAt = t }
func (m *CachedMusic) SetCreatedAt(t time.Time)    { m.createdAt = t }
func (m *CachedMusic) SetUpdatedAt(t time.Time)    { m.updatedAt = t }
func (m *CachedMusic) SetDeletedAt(t *time.Time)   { m.deletedAt = t }

// Validate checks required fields before persistence.
func (m *CachedMusic) Validate() error {
	if m.remoteID <= 0 {
		return fmt.Errorf("cached music requires a remote id")
	}
	if m.title == "" {
		return fmt.Errorf("cached music requires a title")
	}
	if m.youtubeURL == "" {
		return fmt.Errorf("cached music requires a youtube URL")
	}
	return nil
}
