// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/modao/internal/models"
)

// MockBoard is a test double for [services.Board]. Each method delegates to
// the matching function field when set and returns zero values otherwise, so
// tests configure only the calls they care about. Call counts are tracked
// under a mutex for concurrency tests.
type MockBoard struct {
	LoginFunc       func(ctx context.Context, email, password string) (string, *models.User, error)
	LogoutFunc      func(ctx context.Context) error
	MeFunc          func(ctx context.Context) (*models.User, error)
	MusicsFunc      func(ctx context.Context) ([]models.Music, error)
	Top5Func        func(ctx context.Context) ([]models.Music, error)
	SuggestFunc     func(ctx context.Context, create models.SuggestionCreate) (*models.Suggestion, error)
	PendingFunc     func(ctx context.Context) ([]models.Suggestion, error)
	ApproveFunc     func(ctx context.Context, id int64) error
	RejectFunc      func(ctx context.Context, id int64) error
	DeleteMusicFunc func(ctx context.Context, id int64) error
	UpdateMusicFunc func(ctx context.Context, id int64, update models.MusicUpdate) (*models.Music, error)

	mu           sync.Mutex
	calls        map[string]int
	token        string
	unauthorized func()
}

func (m *MockBoard) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[name]++
}

// Calls returns how many times the named method was invoked.
func (m *MockBoard) Calls(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

// Token returns the last token passed to SetToken.
func (m *MockBoard) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// FireUnauthorized invokes the registered unauthorized hook, mimicking a 401
// response on a protected call.
func (m *MockBoard) FireUnauthorized() {
	m.mu.Lock()
	fn := m.unauthorized
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (m *MockBoard) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	m.record("Login")
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return "", nil, nil
}

func (m *MockBoard) Logout(ctx context.Context) error {
	m.record("Logout")
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	return nil
}

func (m *MockBoard) Me(ctx context.Context) (*models.User, error) {
	m.record("Me")
	if m.MeFunc != nil {
		return m.MeFunc(ctx)
	}
	return nil, nil
}

func (m *MockBoard) Musics(ctx context.Context) ([]models.Music, error) {
	m.record("Musics")
	if m.MusicsFunc != nil {
		return m.MusicsFunc(ctx)
	}
	return []models.Music{}, nil
}

func (m *MockBoard) Top5(ctx context.Context) ([]models.Music, error) {
	m.record("Top5")
	if m.Top5Func != nil {
		return m.Top5Func(ctx)
	}
	return []models.Music{}, nil
}

func (m *MockBoard) Suggest(ctx context.Context, create models.SuggestionCreate) (*models.Suggestion, error) {
	m.record("Suggest")
	if m.SuggestFunc != nil {
		return m.SuggestFunc(ctx, create)
	}
	return nil, nil
}

func (m *MockBoard) PendingSuggestions(ctx context.Context) ([]models.Suggestion, error) {
	m.record("PendingSuggestions")
	if m.PendingFunc != nil {
		return m.PendingFunc(ctx)
	}
	return []models.Suggestion{}, nil
}

func (m *MockBoard) ApproveSuggestion(ctx context.Context, id int64) error {
	m.record("ApproveSuggestion")
	if m.ApproveFunc != nil {
		return m.ApproveFunc(ctx, id)
	}
	return nil
}

func (m *MockBoard) RejectSuggestion(ctx context.Context, id int64) error {
	m.record("RejectSuggestion")
	if m.RejectFunc != nil {
		return m.RejectFunc(ctx, id)
	}
	return nil
}

func (m *MockBoard) DeleteMusic(ctx context.Context, id int64) error {
	m.record("DeleteMusic")
	if m.DeleteMusicFunc != nil {
		return m.DeleteMusicFunc(ctx, id)
	}
	return nil
}

func (m *MockBoard) UpdateMusic(ctx context.Context, id int64, update models.MusicUpdate) (*models.Music, error) {
	m.record("UpdateMusic")
	if m.UpdateMusicFunc != nil {
		return m.UpdateMusicFunc(ctx, id, update)
	}
	return nil, nil
}

func (m *MockBoard) SetToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
}

func (m *MockBoard) ClearToken() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
}

func (m *MockBoard) OnUnauthorized(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unauthorized = fn
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
