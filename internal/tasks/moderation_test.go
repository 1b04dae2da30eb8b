package tasks

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/desertthunder/modao/internal/models"
	"github.com/desertthunder/modao/internal/services"
	"github.com/desertthunder/modao/internal/session"
	"github.com/desertthunder/modao/internal/shared"
	mocks "github.com/desertthunder/modao/internal/testing"
)

var _ services.Board = (*mocks.MockBoard)(nil)

// newAdminStore returns a store authenticated as an administrator against
// the given mock.
func newAdminStore(t *testing.T, board *mocks.MockBoard) *session.Store {
	t.Helper()

	board.LoginFunc = func(ctx context.Context, email, password string) (string, *models.User, error) {
		return "test-token", &models.User{ID: 1, Email: email, Role: "admin"}, nil
	}

	store := session.NewStore(board, filepath.Join(t.TempDir(), "session.json"), nil)
	if err := store.Login(context.Background(), "admin@example.com", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	return store
}

func pendingFixture() []models.Suggestion {
	return []models.Suggestion{
		{RemoteID: 1, Title: "Primeira", YouTubeURL: "https://youtu.be/dQw4w9WgXcQ"},
		{RemoteID: 2, Title: "Segunda", YouTubeURL: "https://youtu.be/jNQXAC9IVRw"},
		{RemoteID: 3, Title: "Terceira", YouTubeURL: "https://youtu.be/9bZkp7q19f0"},
	}
}

type recordingAudit struct {
	mu        sync.Mutex
	decisions []*models.Decision
	err       error
}

func (a *recordingAudit) Create(decision *models.Decision) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.err
	}
	a.decisions = append(a.decisions, decision)
	return nil
}

func TestModerationEngineGate(t *testing.T) {
	ctx := context.Background()

	t.Run("operations wait out an unsettled session", func(t *testing.T) {
		board := &mocks.MockBoard{}
		store := session.NewStore(board, filepath.Join(t.TempDir(), "session.json"), nil)
		engine := NewModerationEngine(board, store, nil, nil)

		if err := engine.Approve(ctx, 1); !errors.Is(err, shared.ErrSessionRestoring) {
			t.Errorf("Expected ErrSessionRestoring before restore, got %v", err)
		}
		if board.Calls("ApproveSuggestion") != 0 {
			t.Error("Expected no network call while session is unsettled")
		}
	})

	t.Run("operations reject anonymous sessions", func(t *testing.T) {
		board := &mocks.MockBoard{}
		store := session.NewStore(board, filepath.Join(t.TempDir(), "session.json"), nil)
		store.Restore(ctx)

		engine := NewModerationEngine(board, store, nil, nil)
		if _, err := engine.LoadPending(ctx); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("Expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("operations reject non-admin users", func(t *testing.T) {
		board := &mocks.MockBoard{}
		board.LoginFunc = func(ctx context.Context, email, password string) (string, *models.User, error) {
			return "tok", &models.User{ID: 2, Email: email, Role: "user"}, nil
		}

		store := session.NewStore(board, filepath.Join(t.TempDir(), "session.json"), nil)
		if err := store.Login(ctx, "visitor@example.com", "pw"); err != nil {
			t.Fatalf("Login failed: %v", err)
		}

		engine := NewModerationEngine(board, store, nil, nil)
		if err := engine.Reject(ctx, 1); !errors.Is(err, shared.ErrNotAdmin) {
			t.Errorf("Expected ErrNotAdmin, got %v", err)
		}
		if board.Calls("RejectSuggestion") != 0 {
			t.Error("Expected no network call for non-admin user")
		}
	})
}

func TestModerationEngineLoadPending(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces cache on success", func(t *testing.T) {
		board := &mocks.MockBoard{}
		store := newAdminStore(t, board)
		engine := NewModerationEngine(board, store, nil, nil)

		board.PendingFunc = func(ctx context.Context) ([]models.Suggestion, error) {
			return pendingFixture(), nil
		}

		pending, err := engine.LoadPending(ctx)
		if err != nil {
			t.Fatalf("LoadPending failed: %v", err)
		}
		if len(pending) != 3 {
			t.Errorf("Expected 3 pending suggestions, got %d", len(pending))
		}

		board.PendingFunc = func(ctx context.Context) ([]models.Suggestion, error) {
			return pendingFixture()[:1], nil
		}

		pending, err = engine.LoadPending(ctx)
		if err != nil {
			t.Fatalf("Second LoadPending failed: %v", err)
		}
		if len(pending) != 1 {
			t.Errorf("Expected reload to replace cache, got %d entries", len(pending))
		}
	})

	t.Run("leaves cache untouched on failure", func(t *testing.T) {
		board := &mocks.MockBoard{}
		store := newAdminStore(t, board)
		engine := NewModerationEngine(board, store, nil, nil)

		board.PendingFunc = func(ctx context.Context) ([]models.Suggestion, error) {
			return pendingFixture(), nil
		}
		if _, err := engine.LoadPending(ctx); err != nil {
			t.Fatalf("LoadPending failed: %v", err)
		}

		board.PendingFunc = func(ctx context.Context) ([]models.Suggestion, error) {
			return nil, shared.ErrServer
		}
		if _, err := engine.LoadPending(ctx); !errors.Is(err, shared.ErrServer) {
			t.Fatalf("Expected ErrServer, got %v", err)
		}

		if got := len(engine.Pending()); got != 3 {
			t.Errorf("Expected cache to survive failed reload, got %d entries", got)
		}
	})
}

func TestModerationEngineDecisions(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, audit AuditLog) (*mocks.MockBoard, *ModerationEngine) {
		t.Helper()
		board := &mocks.MockBoard{}
		store := newAdminStore(t, board)
		engine := NewModerationEngine(board, store, audit, nil)

		board.PendingFunc = func(ctx context.Context) ([]models.Suggestion, error) {
			return pendingFixture(), nil
		}
		if _, err := engine.LoadPending(ctx); err != nil {
			t.Fatalf("LoadPending failed: %v", err)
		}
		return board, engine
	}

	t.Run("approve removes entry after confirmation", func(t *testing.T) {
		audit := &recordingAudit{}
		board, engine := setup(t, audit)

		if err := engine.Approve(ctx, 2); err != nil {
			t.Fatalf("Approve failed: %v", err)
		}
		if board.Calls("ApproveSuggestion") != 1 {
			t.Errorf("Expected one approve call, got %d", board.Calls("ApproveSuggestion"))
		}

		for _, s := range engine.Pending() {
			if s.RemoteID == 2 {
				t.Error("Expected approved suggestion to leave the pending cache")
			}
		}

		if len(audit.decisions) != 1 {
			t.Fatalf("Expected one audit record, got %d", len(audit.decisions))
		}
		if audit.decisions[0].Action() != models.ActionApprove {
			t.Errorf("Expected approve action in audit record, got %s", audit.decisions[0].Action())
		}
		if audit.decisions[0].DecidedBy() != "admin@example.com" {
			t.Errorf("Expected deciding admin in audit record, got %q", audit.decisions[0].DecidedBy())
		}
	})

	t.Run("reject failure leaves pending unchanged", func(t *testing.T) {
		board, engine := setup(t, nil)

		board.RejectFunc = func(ctx context.Context, id int64) error {
			return shared.ErrServer
		}

		if err := engine.Reject(ctx, 1); !errors.Is(err, shared.ErrServer) {
			t.Fatalf("Expected ErrServer, got %v", err)
		}
		if got := len(engine.Pending()); got != 3 {
			t.Errorf("Expected pending cache unchanged after failure, got %d entries", got)
		}
		if engine.Status(1) != StatusPending {
			t.Errorf("Expected suggestion back to pending after failure, got %s", engine.Status(1))
		}
	})

	t.Run("audit failure does not fail the decision", func(t *testing.T) {
		audit := &recordingAudit{err: errors.New("disk full")}
		_, engine := setup(t, audit)

		if err := engine.Approve(ctx, 3); err != nil {
			t.Errorf("Expected approve to succeed despite audit failure, got %v", err)
		}
	})

	t.Run("concurrent decisions for one id collapse to a single call", func(t *testing.T) {
		board, engine := setup(t, nil)

		started := make(chan struct{})
		release := make(chan struct{})
		board.ApproveFunc = func(ctx context.Context, id int64) error {
			close(started)
			<-release
			return nil
		}

		firstErr := make(chan error, 1)
		go func() {
			firstErr <- engine.Approve(ctx, 1)
		}()

		<-started
		if engine.Status(1) != StatusApproving {
			t.Errorf("Expected approving status while in flight, got %s", engine.Status(1))
		}

		if err := engine.Approve(ctx, 1); !errors.Is(err, shared.ErrOperationInFlight) {
			t.Errorf("Expected ErrOperationInFlight for duplicate approve, got %v", err)
		}
		if err := engine.Reject(ctx, 1); !errors.Is(err, shared.ErrOperationInFlight) {
			t.Errorf("Expected ErrOperationInFlight for reject of busy id, got %v", err)
		}

		// Other ids stay actionable while id 1 is busy.
		if err := engine.Reject(ctx, 2); err != nil {
			t.Errorf("Expected other ids to stay actionable, got %v", err)
		}

		close(release)
		if err := <-firstErr; err != nil {
			t.Fatalf("First approve failed: %v", err)
		}

		if board.Calls("ApproveSuggestion") != 1 {
			t.Errorf("Expected exactly one approve network call, got %d", board.Calls("ApproveSuggestion"))
		}
		if engine.Status(1) != StatusPending {
			t.Errorf("Expected inflight entry cleared after settle, got %s", engine.Status(1))
		}
	})

	t.Run("cache matches a fresh load after decisions settle", func(t *testing.T) {
		board, engine := setup(t, nil)

		remaining := pendingFixture()[1:]
		board.PendingFunc = func(ctx context.Context) ([]models.Suggestion, error) {
			return remaining, nil
		}

		if err := engine.Approve(ctx, 1); err != nil {
			t.Fatalf("Approve failed: %v", err)
		}

		cached := engine.Pending()
		fresh, err := engine.LoadPending(ctx)
		if err != nil {
			t.Fatalf("LoadPending failed: %v", err)
		}

		if len(cached) != len(fresh) {
			t.Fatalf("Expected trimmed cache to match fresh load: %d vs %d", len(cached), len(fresh))
		}
		for i := range cached {
			if cached[i].RemoteID != fresh[i].RemoteID {
				t.Errorf("Cache diverged from fresh load at index %d", i)
			}
		}
	})
}
