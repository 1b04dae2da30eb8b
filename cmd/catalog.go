package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/modao/internal/formatter"
	"github.com/desertthunder/modao/internal/models"
	"github.com/desertthunder/modao/internal/repositories"
	"github.com/desertthunder/modao/internal/shared"
	"github.com/desertthunder/modao/internal/youtube"
	"github.com/urfave/cli/v3"
)

// CatalogList lists approved songs, paginated locally.
func (r *Runner) CatalogList(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.catalog.LoadAll(ctx); err != nil {
		return err
	}

	page := int(cmd.Int("page"))
	size := int(cmd.Int("size"))
	entries, totalPages := r.catalog.Page(page, size)

	if cmd.Bool("json") {
		return r.writeJSON(entries, true)
	}

	r.writePlainHeader(fmt.Sprintf("Catálogo — página %d de %d", page, totalPages))
	if len(entries) == 0 {
		return r.writePlain("Nenhuma música nesta página\n")
	}

	for _, music := range entries {
		r.writePlain("%d. %s (%s views)\n   %s\n", music.Position, music.Title, formatter.FormatViews(music.Views), music.YouTubeURL)
	}

	return nil
}

// CatalogTop5 shows the top-ranked songs.
func (r *Runner) CatalogTop5(ctx context.Context, cmd *cli.Command) error {
	top, err := r.catalog.Top5(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(top, true)
	}

	r.writePlainHeader("Top 5")
	for i, music := range top {
		r.writePlain("%d. %s (%s views)\n", i+1, music.Title, formatter.FormatViews(music.Views))
	}

	return nil
}

// CatalogUpdate points a catalog entry at a new YouTube link.
func (r *Runner) CatalogUpdate(ctx context.Context, cmd *cli.Command) error {
	r.restore(ctx)

	id := cmd.Int64("id")
	url := cmd.String("url")

	if _, err := r.catalog.LoadAll(ctx); err != nil {
		return err
	}

	confirmed, err := r.catalog.Update(ctx, id, url)
	if err != nil {
		return err
	}

	r.writePlain("✓ Música %d atualizada\n", confirmed.RemoteID)
	r.writePlain("Título: %s\n", confirmed.Title)
	r.writePlain("URL: %s\n", confirmed.YouTubeURL)

	return nil
}

// CatalogDelete removes a catalog entry.
func (r *Runner) CatalogDelete(ctx context.Context, cmd *cli.Command) error {
	r.restore(ctx)

	id := cmd.Int64("id")
	if err := r.catalog.Delete(ctx, id); err != nil {
		return err
	}

	return r.writePlain("✓ Música %d removida do catálogo\n", id)
}

// CatalogOpen opens a catalog entry's video in the system browser.
func (r *Runner) CatalogOpen(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.catalog.LoadAll(ctx); err != nil {
		return err
	}

	id := cmd.Int64("id")
	music, ok := r.catalog.Get(id)
	if !ok {
		return fmt.Errorf("%w: music %d", shared.ErrNotFound, id)
	}

	r.logger.Info("opening in browser", "url", music.YouTubeURL)
	if err := shared.OpenBrowser(music.YouTubeURL); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return r.writePlain("✓ Abrindo %s\n", music.Title)
}

// CatalogExport writes the catalog to CSV, Markdown, or plain text.
func (r *Runner) CatalogExport(ctx context.Context, cmd *cli.Command) error {
	entries, err := r.catalog.LoadAll(ctx)
	if err != nil {
		return err
	}

	result, err := formatter.WriteExport(entries, cmd.String("format"), cmd.String("output"))
	if err != nil {
		return err
	}

	r.logger.Info("catalog exported", "file", result.File, "format", result.Format)
	return r.writePlain("✓ Catálogo exportado para %s\n", result.File)
}

// CatalogSync snapshots the server catalog into the local cache database
// for offline listing and export.
func (r *Runner) CatalogSync(ctx context.Context, cmd *cli.Command) error {
	entries, err := r.catalog.LoadAll(ctx)
	if err != nil {
		return err
	}

	configPath := cmd.String("config")
	config := r.config
	if loaded, err := shared.LoadConfig(configPath); err == nil {
		config = loaded
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open local database: %w", err)
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	repo := repositories.NewMusicRepository(db)
	syncedAt := time.Now()

	keep := make([]int64, 0, len(entries))
	for _, music := range entries {
		cached := r.snapshotEntry(music, syncedAt)
		if err := repo.Upsert(cached); err != nil {
			return fmt.Errorf("failed to cache music %d: %w", music.RemoteID, err)
		}
		keep = append(keep, music.RemoteID)
	}

	pruned, err := repo.PruneMissing(keep)
	if err != nil {
		return fmt.Errorf("failed to prune departed entries: %w", err)
	}

	r.logger.Info("catalog synced", "entries", len(entries), "pruned", pruned)
	r.writePlain("✓ %d músicas sincronizadas", len(entries))
	if pruned > 0 {
		r.writePlain(", %d removidas", pruned)
	}
	r.writePlain("\n")

	return nil
}

// snapshotEntry converts a server catalog entry into the locally persisted shape.
func (r *Runner) snapshotEntry(music models.Music, syncedAt time.Time) *models.CachedMusic {
	cached := models.NewCachedMusic(0, music.RemoteID, music.Title, music.YouTubeURL, syncedAt)
	cached.SetViews(music.Views)
	cached.SetPosition(music.Position)
	if videoID, err := youtube.ExtractVideoID(music.YouTubeURL); err == nil {
		cached.SetVideoID(videoID)
	}
	return cached
}
