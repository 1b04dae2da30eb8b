package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/modao/internal/models"
	"github.com/desertthunder/modao/internal/services"
	"github.com/desertthunder/modao/internal/session"
	"github.com/desertthunder/modao/internal/shared"
	"github.com/desertthunder/modao/internal/youtube"
)

// CatalogEngine maintains the approved-song list.
//
// The full catalog is fetched once per refresh; pagination is a pure slice
// view over the cache, not a server concept. Mutations remove or replace
// entries locally only after the server confirms them.
type CatalogEngine struct {
	board    services.Board
	session  *session.Store
	enricher *youtube.Enricher
	logger   *log.Logger

	mu       sync.Mutex
	entries  []models.Music
	loaded   bool
	inflight map[int64]bool
}

// NewCatalogEngine creates a catalog engine.
func NewCatalogEngine(board services.Board, store *session.Store, enricher *youtube.Enricher, logger *log.Logger) *CatalogEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	if enricher == nil {
		enricher = youtube.NewEnricher("", nil, 0)
	}

	return &CatalogEngine{
		board:    board,
		session:  store,
		enricher: enricher,
		logger:   logger,
		inflight: make(map[int64]bool),
	}
}

// LoadAll refreshes the catalog cache from the server. Public, no session
// required. On failure the cache is left untouched.
func (e *CatalogEngine) LoadAll(ctx context.Context) ([]models.Music, error) {
	musics, err := e.board.Musics(ctx)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.entries = musics
	e.loaded = true
	e.mu.Unlock()

	return e.Entries(), nil
}

// Top5 fetches the top-ranked subset. Not cached; the ranked view is small
// and always rendered fresh.
func (e *CatalogEngine) Top5(ctx context.Context) ([]models.Music, error) {
	return e.board.Top5(ctx)
}

// Entries returns a copy of the cached catalog.
func (e *CatalogEngine) Entries() []models.Music {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]models.Music, len(e.entries))
	copy(out, e.entries)
	return out
}

// Get returns the cached entry with the given id.
func (e *CatalogEngine) Get(id int64) (models.Music, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, m := range e.entries {
		if m.RemoteID == id {
			return m, true
		}
	}
	return models.Music{}, false
}

// Page returns the 1-based page of the cached catalog and the total page
// count for the given size.
func (e *CatalogEngine) Page(page, size int) ([]models.Music, int) {
	if size <= 0 {
		size = 5
	}
	if page <= 0 {
		page = 1
	}

	entries := e.Entries()
	totalPages := (len(entries) + size - 1) / size

	start := (page - 1) * size
	if start >= len(entries) {
		return nil, totalPages
	}

	end := start + size
	if end > len(entries) {
		end = len(entries)
	}

	return entries[start:end], totalPages
}

// Delete removes a catalog entry. The local cache changes only after the
// server confirms; on failure the list is untouched.
func (e *CatalogEngine) Delete(ctx context.Context, id int64) error {
	if err := requireAdmin(e.session); err != nil {
		return err
	}

	if err := e.lock(id); err != nil {
		return err
	}
	defer e.unlock(id)

	if err := e.board.DeleteMusic(ctx, id); err != nil {
		return err
	}

	e.mu.Lock()
	for i, m := range e.entries {
		if m.RemoteID == id {
			e.entries = append(e.entries[:i], e.entries[i+1:]...)
			break
		}
	}
	e.mu.Unlock()

	return nil
}

// Update re-points a catalog entry at a new YouTube link.
//
// The URL is validated locally first so an obviously malformed link never
// costs a network round-trip. Metadata comes from the enrichment lookup with
// its deterministic fallback; whatever the server confirms replaces the
// locally derived guesses in the cache.
func (e *CatalogEngine) Update(ctx context.Context, id int64, newURL string) (*models.Music, error) {
	if err := requireAdmin(e.session); err != nil {
		return nil, err
	}

	videoID, err := youtube.ExtractVideoID(newURL)
	if err != nil {
		return nil, err
	}

	if err := e.lock(id); err != nil {
		return nil, err
	}
	defer e.unlock(id)

	meta := e.enricher.Enrich(ctx, videoID)

	update := models.MusicUpdate{
		YouTubeURL: newURL,
		Title:      meta.Title,
		Thumbnail:  meta.ThumbnailURL,
		Views:      meta.Views,
	}

	confirmed, err := e.board.UpdateMusic(ctx, id, update)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	for i, m := range e.entries {
		if m.RemoteID == id {
			e.entries[i] = *confirmed
			break
		}
	}
	e.mu.Unlock()

	return confirmed, nil
}

func (e *CatalogEngine) lock(id int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.inflight[id] {
		return fmt.Errorf("%w: music %d", shared.ErrOperationInFlight, id)
	}
	e.inflight[id] = true
	return nil
}

func (e *CatalogEngine) unlock(id int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.inflight, id)
}
