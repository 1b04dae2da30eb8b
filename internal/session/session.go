// package session owns the authenticated-user/token pair and its lifecycle.
//
// The store is the single owner of auth state: it persists the session across
// process restarts, restores it once at startup, and clears it when the board
// rejects the token. Components receive the store by injection; there is no
// ambient global session.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/modao/internal/models"
	"github.com/desertthunder/modao/internal/services"
	"github.com/desertthunder/modao/internal/shared"
)

// State enumerates the session lifecycle.
//
// Unknown → Restoring → {Authenticated, Anonymous}; Authenticated → Anonymous
// on logout or 401. There is no way back to Restoring without a process
// restart.
type State int

const (
	Unknown State = iota
	Restoring
	Authenticated
	Anonymous
)

func (s State) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case Restoring:
		return "restoring"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return ""
	}
}

// persisted is the on-disk session shape. Token and user are written
// together; a file with one but not the other is treated as corrupt.
type persisted struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Store holds the current session and its persistence.
//
// The mutex guards state only; network calls always happen outside it so the
// board client's unauthorized hook can re-enter the store safely.
type Store struct {
	board  services.Board
	path   string
	logger *log.Logger

	mu    sync.Mutex
	state State
	token string
	user  *models.User
}

// NewStore creates a session store persisting to path and registers the
// store as the board client's 401 handler.
func NewStore(board services.Board, path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	s := &Store{
		board:  board,
		path:   path,
		logger: logger,
		state:  Unknown,
	}

	board.OnUnauthorized(s.handleUnauthorized)

	return s
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentUser returns the authenticated user snapshot, or nil.
func (s *Store) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// IsAuthenticated reports whether a validated session is active.
func (s *Store) IsAuthenticated() bool {
	return s.State() == Authenticated
}

// IsAdmin reports whether the current session belongs to an administrator.
// Always false while Anonymous, Unknown, or Restoring.
func (s *Store) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == Authenticated && s.user.IsAdmin()
}

// Login exchanges credentials for a session and persists it atomically.
// Nothing is persisted on failure.
func (s *Store) Login(ctx context.Context, email, password string) error {
	token, user, err := s.board.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if err := s.persist(token, user); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	s.board.SetToken(token)

	s.mu.Lock()
	s.state = Authenticated
	s.token = token
	s.user = user
	s.mu.Unlock()

	return nil
}

// Restore revalidates a previously persisted token. Called once at startup.
//
// Any failure (missing file, malformed data, network error, rejected token)
// clears the persisted session and lands in Anonymous: restoration never
// leaves a token on disk without a validated user.
func (s *Store) Restore(ctx context.Context) State {
	s.mu.Lock()
	if s.state != Unknown {
		state := s.state
		s.mu.Unlock()
		return state
	}
	s.state = Restoring
	s.mu.Unlock()

	saved, err := s.readPersisted()
	if err != nil || saved.Token == "" {
		if err != nil && !os.IsNotExist(err) {
			s.logger.Warnf("discarding unreadable session file: %v", err)
		}
		s.clear()
		return Anonymous
	}

	s.board.SetToken(saved.Token)

	user, err := s.board.Me(ctx)
	if err != nil {
		s.logger.Warnf("persisted session rejected: %v", err)
		s.clear()
		return Anonymous
	}

	// Refresh the snapshot in case the account changed since last run.
	if err := s.persist(saved.Token, user); err != nil {
		s.logger.Warnf("failed to refresh session file: %v", err)
	}

	s.mu.Lock()
	s.state = Authenticated
	s.token = saved.Token
	s.user = user
	s.mu.Unlock()

	return Authenticated
}

// ImportToken adopts a bearer token captured elsewhere (e.g. from a browser
// "Copy as cURL"), validating it via /me before persisting.
func (s *Store) ImportToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", shared.ErrInvalidInput)
	}

	s.board.SetToken(token)

	user, err := s.board.Me(ctx)
	if err != nil {
		s.board.ClearToken()
		return nil, err
	}

	if err := s.persist(token, user); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	s.mu.Lock()
	s.state = Authenticated
	s.token = token
	s.user = user
	s.mu.Unlock()

	return user, nil
}

// Logout notifies the server best-effort, then unconditionally clears local
// state. A failed or timed-out server call never leaves the session behind.
func (s *Store) Logout(ctx context.Context) {
	if s.State() == Authenticated {
		if err := s.board.Logout(ctx); err != nil {
			s.logger.Warnf("server logout failed: %v", err)
		}
	}

	s.clear()
}

// handleUnauthorized is the board client's 401 hook: the token was rejected,
// so the session is gone regardless of what the caller was doing.
func (s *Store) handleUnauthorized() {
	s.logger.Warn("session token rejected by server")
	s.clear()
}

// clear drops the in-memory session, the board token, and the persisted file.
func (s *Store) clear() {
	s.board.ClearToken()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.logger.Warnf("failed to remove session file: %v", err)
	}

	s.mu.Lock()
	s.state = Anonymous
	s.token = ""
	s.user = nil
	s.mu.Unlock()
}

// persist writes token and user together via a temp file rename so a crash
// never leaves a partial session on disk.
func (s *Store) persist(token string, user *models.User) error {
	data, err := json.MarshalIndent(persisted{Token: token, User: user}, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}

func (s *Store) readPersisted() (*persisted, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	var saved persisted
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("malformed session file: %w", err)
	}

	if saved.Token == "" || saved.User == nil {
		return nil, fmt.Errorf("partial session file")
	}

	return &saved, nil
}
