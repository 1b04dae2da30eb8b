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
)

// ModerationEngine turns pending suggestions into approved or rejected
// catalog entries.
//
// The pending cache is replaced wholesale by LoadPending and trimmed after
// each confirmed decision, so after any settled operation it matches what a
// fresh load would return (modulo concurrent moderation elsewhere).
type ModerationEngine struct {
	board   services.Board
	session *session.Store
	audit   AuditLog
	logger  *log.Logger

	mu       sync.Mutex
	pending  []models.Suggestion
	loaded   bool
	inflight map[int64]Status
}

// NewModerationEngine creates a moderation engine. audit may be nil.
func NewModerationEngine(board services.Board, store *session.Store, audit AuditLog, logger *log.Logger) *ModerationEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &ModerationEngine{
		board:    board,
		session:  store,
		audit:    audit,
		logger:   logger,
		inflight: make(map[int64]Status),
	}
}

// LoadPending refreshes the pending cache from the server. On failure the
// cache is left untouched so the caller can retry.
func (e *ModerationEngine) LoadPending(ctx context.Context) ([]models.Suggestion, error) {
	if err := requireAdmin(e.session); err != nil {
		return nil, err
	}

	suggestions, err := e.board.PendingSuggestions(ctx)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.pending = suggestions
	e.loaded = true
	e.mu.Unlock()

	return e.Pending(), nil
}

// Pending returns a copy of the cached pending list.
func (e *ModerationEngine) Pending() []models.Suggestion {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]models.Suggestion, len(e.pending))
	copy(out, e.pending)
	return out
}

// Status returns the moderation status of a suggestion id.
func (e *ModerationEngine) Status(id int64) Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	if status, ok := e.inflight[id]; ok {
		return status
	}
	return StatusPending
}

// Approve promotes a pending suggestion into the catalog.
func (e *ModerationEngine) Approve(ctx context.Context, id int64) error {
	return e.decide(ctx, id, models.ActionApprove)
}

// Reject discards a pending suggestion.
func (e *ModerationEngine) Reject(ctx context.Context, id int64) error {
	return e.decide(ctx, id, models.ActionReject)
}

// decide runs one moderation mutation under the per-id lock. A second call
// for the same id while one is in flight gets ErrOperationInFlight; other
// ids are unaffected.
func (e *ModerationEngine) decide(ctx context.Context, id int64, action string) error {
	if err := requireAdmin(e.session); err != nil {
		return err
	}

	status := StatusApproving
	if action == models.ActionReject {
		status = StatusRejecting
	}

	e.mu.Lock()
	if _, busy := e.inflight[id]; busy {
		e.mu.Unlock()
		return fmt.Errorf("%w: suggestion %d", shared.ErrOperationInFlight, id)
	}
	e.inflight[id] = status
	youtubeURL := ""
	for _, s := range e.pending {
		if s.RemoteID == id {
			youtubeURL = s.YouTubeURL
			break
		}
	}
	e.mu.Unlock()

	var err error
	if action == models.ActionApprove {
		err = e.board.ApproveSuggestion(ctx, id)
	} else {
		err = e.board.RejectSuggestion(ctx, id)
	}

	e.mu.Lock()
	delete(e.inflight, id)
	if err == nil {
		e.removeLocked(id)
	}
	e.mu.Unlock()

	if err != nil {
		return err
	}

	e.recordDecision(id, action, youtubeURL)
	return nil
}

// removeLocked drops a settled suggestion from the pending cache.
// Caller holds e.mu.
func (e *ModerationEngine) removeLocked(id int64) {
	for i, s := range e.pending {
		if s.RemoteID == id {
			e.pending = append(e.pending[:i], e.pending[i+1:]...)
			return
		}
	}
}

// recordDecision appends to the local audit log. Audit failures are logged,
// never surfaced: the server already confirmed the decision.
func (e *ModerationEngine) recordDecision(id int64, action, youtubeURL string) {
	if e.audit == nil {
		return
	}

	decidedBy := ""
	if user := e.session.CurrentUser(); user != nil {
		decidedBy = user.Email
	}

	decision := models.NewDecision(0, id, action, youtubeURL, decidedBy)
	if err := e.audit.Create(decision); err != nil {
		e.logger.Warnf("failed to record decision for suggestion %d: %v", id, err)
	}
}
