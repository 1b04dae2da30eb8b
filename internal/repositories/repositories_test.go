package repositories

import (
	"database/sql"
	"testing"
	"time"

	"github.com/desertthunder/modao/internal/models"
	"github.com/desertthunder/modao/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func sampleMusic(remoteID int64, title string) *models.CachedMusic {
	music := models.NewCachedMusic(0, remoteID, title, "https://youtu.be/dQw4w9WgXcQ", time.Now())
	music.SetVideoID("dQw4w9WgXcQ")
	music.SetViews(1500000)
	music.SetPosition(int(remoteID))
	return music
}

func TestMusicRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMusicRepository(db)
		music := sampleMusic(1, "Primeira")

		if err := repo.Create(music); err != nil {
			t.Fatalf("failed to create music: %v", err)
		}
		if music.ID() == "" {
			t.Error("music ID should be set after creation")
		}
	})

	t.Run("Create_ValidationFails", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMusicRepository(db)
		music := models.NewCachedMusic(0, 0, "", "", time.Now())

		if err := repo.Create(music); err == nil {
			t.Error("expected validation error for empty music")
		}
	})

	t.Run("GetByRemoteID", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMusicRepository(db)
		if err := repo.Create(sampleMusic(7, "Sétima")); err != nil {
			t.Fatalf("failed to create music: %v", err)
		}

		got, err := repo.GetByRemoteID(7)
		if err != nil {
			t.Fatalf("failed to get music: %v", err)
		}
		if got.Title() != "Sétima" {
			t.Errorf("expected title Sétima, got %s", got.Title())
		}
		if got.VideoID() != "dQw4w9WgXcQ" {
			t.Errorf("expected video id round-trip, got %s", got.VideoID())
		}
	})

	t.Run("Upsert", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMusicRepository(db)
		if err := repo.Upsert(sampleMusic(3, "Original")); err != nil {
			t.Fatalf("first upsert failed: %v", err)
		}

		updated := sampleMusic(3, "Renamed")
		updated.SetViews(2300000)
		if err := repo.Upsert(updated); err != nil {
			t.Fatalf("second upsert failed: %v", err)
		}

		musics, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list musics: %v", err)
		}
		if len(musics) != 1 {
			t.Fatalf("expected upsert to keep one row per remote id, got %d", len(musics))
		}
		if musics[0].Title() != "Renamed" || musics[0].Views() != 2300000 {
			t.Errorf("expected updated fields, got %s / %d", musics[0].Title(), musics[0].Views())
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMusicRepository(db)
		music := sampleMusic(5, "Quinta")
		if err := repo.Create(music); err != nil {
			t.Fatalf("failed to create music: %v", err)
		}

		if err := repo.Delete(music.ID()); err != nil {
			t.Fatalf("failed to delete music: %v", err)
		}
		if _, err := repo.Get(music.ID()); err == nil {
			t.Error("expected soft-deleted music to be excluded from Get")
		}
		if err := repo.Delete(music.ID()); err == nil {
			t.Error("expected second delete to fail")
		}
	})

	t.Run("PruneMissing", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMusicRepository(db)
		for i := int64(1); i <= 3; i++ {
			if err := repo.Create(sampleMusic(i, "Entrada")); err != nil {
				t.Fatalf("failed to create music %d: %v", i, err)
			}
		}

		pruned, err := repo.PruneMissing([]int64{1, 3})
		if err != nil {
			t.Fatalf("prune failed: %v", err)
		}
		if pruned != 1 {
			t.Errorf("expected 1 pruned row, got %d", pruned)
		}

		musics, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list musics: %v", err)
		}
		if len(musics) != 2 {
			t.Errorf("expected 2 surviving rows, got %d", len(musics))
		}
	})

	t.Run("List_OrdersByPosition", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMusicRepository(db)
		first := sampleMusic(10, "Décima")
		first.SetPosition(2)
		second := sampleMusic(11, "Décima primeira")
		second.SetPosition(1)

		if err := repo.Create(first); err != nil {
			t.Fatalf("failed to create music: %v", err)
		}
		if err := repo.Create(second); err != nil {
			t.Fatalf("failed to create music: %v", err)
		}

		musics, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list musics: %v", err)
		}
		if musics[0].RemoteID() != 11 {
			t.Errorf("expected position ordering, got remote id %d first", musics[0].RemoteID())
		}
	})
}

func TestDecisionRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewDecisionRepository(db)
		decision := models.NewDecision(0, 42, models.ActionApprove, "https://youtu.be/dQw4w9WgXcQ", "admin@example.com")

		if err := repo.Create(decision); err != nil {
			t.Fatalf("failed to create decision: %v", err)
		}
		if decision.ID() == "" {
			t.Error("decision ID should be set after creation")
		}
	})

	t.Run("Create_RejectsUnknownAction", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewDecisionRepository(db)
		decision := models.NewDecision(0, 42, "postpone", "", "admin@example.com")

		if err := repo.Create(decision); err == nil {
			t.Error("expected validation error for unknown action")
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewDecisionRepository(db)
		decision := models.NewDecision(0, 7, models.ActionReject, "https://youtu.be/jNQXAC9IVRw", "admin@example.com")
		if err := repo.Create(decision); err != nil {
			t.Fatalf("failed to create decision: %v", err)
		}

		got, err := repo.Get(decision.ID())
		if err != nil {
			t.Fatalf("failed to get decision: %v", err)
		}
		if got.SuggestionID() != 7 || got.Action() != models.ActionReject {
			t.Errorf("unexpected decision fields: %d / %s", got.SuggestionID(), got.Action())
		}
		if got.DecidedBy() != "admin@example.com" {
			t.Errorf("expected decided_by round-trip, got %s", got.DecidedBy())
		}
	})

	t.Run("List_FiltersBySuggestionAndAction", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewDecisionRepository(db)
		fixtures := []*models.Decision{
			models.NewDecision(0, 1, models.ActionApprove, "", "a@example.com"),
			models.NewDecision(0, 1, models.ActionReject, "", "a@example.com"),
			models.NewDecision(0, 2, models.ActionApprove, "", "b@example.com"),
		}
		for _, d := range fixtures {
			if err := repo.Create(d); err != nil {
				t.Fatalf("failed to create decision: %v", err)
			}
		}

		bySuggestion, err := repo.List(map[string]any{"suggestion_id": int64(1)})
		if err != nil {
			t.Fatalf("failed to list decisions: %v", err)
		}
		if len(bySuggestion) != 2 {
			t.Errorf("expected 2 decisions for suggestion 1, got %d", len(bySuggestion))
		}

		byAction, err := repo.List(map[string]any{"action": models.ActionApprove})
		if err != nil {
			t.Fatalf("failed to list decisions: %v", err)
		}
		if len(byAction) != 2 {
			t.Errorf("expected 2 approvals, got %d", len(byAction))
		}
	})

	t.Run("SequencesIncrement", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewDecisionRepository(db)
		first := models.NewDecision(0, 1, models.ActionApprove, "", "a@example.com")
		second := models.NewDecision(0, 2, models.ActionApprove, "", "a@example.com")

		if err := repo.Create(first); err != nil {
			t.Fatalf("failed to create decision: %v", err)
		}
		if err := repo.Create(second); err != nil {
			t.Fatalf("failed to create decision: %v", err)
		}

		got, err := repo.Get(second.ID())
		if err != nil {
			t.Fatalf("failed to get decision: %v", err)
		}
		if got.Sequence() != 2 {
			t.Errorf("expected sequence 2, got %d", got.Sequence())
		}
	})
}
