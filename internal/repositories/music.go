package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/modao/internal/models"
	"github.com/desertthunder/modao/internal/shared"
)

// MusicRepository implements models.Repository[*models.CachedMusic] for the
// offline catalog snapshot.
//
// `catalog sync` upserts one row per remote catalog entry keyed by remote_id;
// entries that leave the server catalog are soft-deleted on the next sync.
type MusicRepository struct {
	db *sql.DB
}

// NewMusicRepository creates a new MusicRepository with the given database connection
func NewMusicRepository(db *sql.DB) *MusicRepository {
	return &MusicRepository{db: db}
}

// Create inserts a new [models.CachedMusic] into the database with generated ID and sequence
func (r *MusicRepository) Create(music *models.CachedMusic) error {
	sequence, err := NextSequence(r.db, "musics")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	music.SetID(id)

	if err := music.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO musics (id, sequence, remote_id, title, youtube_url, video_id, views, views_estimated, position, synced_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		music.RemoteID(),
		music.Title(),
		music.YouTubeURL(),
		music.VideoID(),
		music.Views(),
		music.ViewsEstimated(),
		music.Position(),
		music.SyncedAt(),
		music.CreatedAt(),
		music.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert music: %w", err)
	}

	return nil
}

// Get retrieves a cached music by ID, excluding soft-deleted rows
func (r *MusicRepository) Get(id string) (*models.CachedMusic, error) {
	query := `
		SELECT id, sequence, remote_id, title, youtube_url, video_id, views, views_estimated, position, synced_at, created_at, updated_at, deleted_at
		FROM musics
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByRemoteID retrieves a cached music by its server-side catalog id
func (r *MusicRepository) GetByRemoteID(remoteID int64) (*models.CachedMusic, error) {
	query := `
		SELECT id, sequence, remote_id, title, youtube_url, video_id, views, views_estimated, position, synced_at, created_at, updated_at, deleted_at
		FROM musics
		WHERE remote_id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, remoteID))
}

// Update modifies an existing cached music in the database
func (r *MusicRepository) Update(music *models.CachedMusic) error {
	if err := music.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	music.SetUpdatedAt(now)

	query := `
		UPDATE musics
		SET title = ?, youtube_url = ?, video_id = ?, views = ?, views_estimated = ?, position = ?, synced_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		music.Title(),
		music.YouTubeURL(),
		music.VideoID(),
		music.Views(),
		music.ViewsEstimated(),
		music.Position(),
		music.SyncedAt(),
		now,
		music.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update music: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("music not found or already deleted: %s", music.ID())
	}

	return nil
}

// Upsert creates or updates the snapshot row for a remote catalog entry
func (r *MusicRepository) Upsert(music *models.CachedMusic) error {
	existing, err := r.GetByRemoteID(music.RemoteID())
	if err != nil {
		return r.Create(music)
	}

	music.SetID(existing.ID())
	music.SetCreatedAt(existing.CreatedAt())
	return r.Update(music)
}

// Delete soft-deletes a cached music by ID
func (r *MusicRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE musics
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete music: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("music not found or already deleted: %s", id)
	}

	return nil
}

// PruneMissing soft-deletes snapshot rows whose remote id is not in keep.
// Called at the end of a sync so departed catalog entries stop appearing
// in offline listings.
func (r *MusicRepository) PruneMissing(keep []int64) (int64, error) {
	kept := make(map[int64]bool, len(keep))
	for _, id := range keep {
		kept[id] = true
	}

	existing, err := r.List(nil)
	if err != nil {
		return 0, err
	}

	var pruned int64
	for _, music := range existing {
		if kept[music.RemoteID()] {
			continue
		}
		if err := r.Delete(music.ID()); err != nil {
			return pruned, err
		}
		pruned++
	}

	return pruned, nil
}

// List retrieves all cached musics matching the given criteria, excluding soft-deleted rows
func (r *MusicRepository) List(criteria map[string]any) ([]*models.CachedMusic, error) {
	query := `
		SELECT id, sequence, remote_id, title, youtube_url, video_id, views, views_estimated, position, synced_at, created_at, updated_at, deleted_at
		FROM musics
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if videoID, ok := criteria["video_id"].(string); ok && videoID != "" {
		query += " AND video_id = ?"
		args = append(args, videoID)
	}

	query += " ORDER BY position ASC, sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query musics: %w", err)
	}
	defer rows.Close()

	var musics []*models.CachedMusic
	for rows.Next() {
		music, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		musics = append(musics, music)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return musics, nil
}

// scanOne scans a single [sql.Row] into a [models.CachedMusic]
func (r *MusicRepository) scanOne(row *sql.Row) (*models.CachedMusic, error) {
	var (
		id             string
		sequence       int
		remoteID       int64
		title          string
		youtubeURL     string
		videoID        sql.NullString
		views          int64
		viewsEstimated bool
		position       sql.NullInt64
		syncedAt       time.Time
		createdAt      time.Time
		updatedAt      time.Time
		deletedAt      sql.NullTime
	)

	err := row.Scan(&id, &sequence, &remoteID, &title, &youtubeURL, &videoID, &views, &viewsEstimated, &position, &syncedAt, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("music not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan music: %w", err)
	}

	return r.build(id, sequence, remoteID, title, youtubeURL, videoID, views, viewsEstimated, position, syncedAt, createdAt, updatedAt, deletedAt), nil
}

// scanRow scans a row from [sql.Rows] into a [models.CachedMusic]
func (r *MusicRepository) scanRow(rows *sql.Rows) (*models.CachedMusic, error) {
	var (
		id             string
		sequence       int
		remoteID       int64
		title          string
		youtubeURL     string
		videoID        sql.NullString
		views          int64
		viewsEstimated bool
		position       sql.NullInt64
		syncedAt       time.Time
		createdAt      time.Time
		updatedAt      time.Time
		deletedAt      sql.NullTime
	)

	err := rows.Scan(&id, &sequence, &remoteID, &title, &youtubeURL, &videoID, &views, &viewsEstimated, &position, &syncedAt, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan music: %w", err)
	}

	return r.build(id, sequence, remoteID, title, youtubeURL, videoID, views, viewsEstimated, position, syncedAt, createdAt, updatedAt, deletedAt), nil
}

func (r *MusicRepository) build(id string, sequence int, remoteID int64, title, youtubeURL string, videoID sql.NullString, views int64, viewsEstimated bool, position sql.NullInt64, syncedAt, createdAt, updatedAt time.Time, deletedAt sql.NullTime) *models.CachedMusic {
	music := models.NewCachedMusic(sequence, remoteID, title, youtubeURL, syncedAt)
	music.SetID(id)
	music.SetVideoID(videoID.String)
	music.SetViews(views)
	music.SetViewsEstimated(viewsEstimated)
	music.SetPosition(int(position.Int64))
	music.SetCreatedAt(createdAt)
	music.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		music.SetDeletedAt(&deletedAt.Time)
	}

	return music
}
