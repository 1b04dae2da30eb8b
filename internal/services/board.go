// Suggestion board API implementation of [Board]
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/desertthunder/modao/internal/models"
	"github.com/desertthunder/modao/internal/shared"
)

const defaultBoardURL = "http://localhost:8000/api"

// Envelope is the uniform response wrapper used by every board endpoint.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// loginData is the payload of a successful POST /login.
type loginData struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// BoardService implements [Board] over HTTP.
//
// The token and unauthorized hook are guarded by a mutex: the TUI issues
// requests from background commands while the session store mutates the token
// from its own callbacks.
type BoardService struct {
	baseURL    string
	httpClient *http.Client

	mu             sync.RWMutex
	token          string
	onUnauthorized func()
}

// NewBoardService creates a board API client. An empty baseURL falls back to
// the local development server; a nil client gets a 10 second timeout.
func NewBoardService(baseURL string, client *http.Client) *BoardService {
	if baseURL == "" {
		baseURL = defaultBoardURL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	return &BoardService{
		baseURL:    baseURL,
		httpClient: client,
	}
}

// SetToken attaches a bearer token to subsequent requests.
func (b *BoardService) SetToken(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.token = token
}

// ClearToken detaches the bearer token.
func (b *BoardService) ClearToken() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.token = ""
}

// OnUnauthorized registers the hook fired when any protected call returns 401.
// The session store uses this to clear persisted state centrally instead of
// per call site.
func (b *BoardService) OnUnauthorized(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onUnauthorized = fn
}

func (b *BoardService) currentToken() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.token
}

func (b *BoardService) fireUnauthorized() {
	b.mu.RLock()
	fn := b.onUnauthorized
	b.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// doRequest performs an HTTP request against the board API and decodes the
// envelope into result. Every error returned wraps one of the shared
// sentinels; callers never see a raw transport error.
func (b *BoardService) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	apiURL := b.baseURL + endpoint

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := b.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	var envelope Envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&envelope)

	if resp.StatusCode == http.StatusUnauthorized {
		if endpoint == "/login" {
			return fmt.Errorf("%w: %s", shared.ErrInvalidCredentials, envelopeMessage(envelope, "invalid credentials"))
		}
		b.fireUnauthorized()
		return fmt.Errorf("%w: %s", shared.ErrSessionExpired, envelopeMessage(envelope, "token rejected"))
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", shared.ErrNotFound, envelopeMessage(envelope, endpoint))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d: %s", shared.ErrServer, resp.StatusCode, envelopeMessage(envelope, "request failed"))
	}

	if decodeErr != nil {
		return fmt.Errorf("%w: malformed response: %v", shared.ErrServer, decodeErr)
	}

	if !envelope.Success {
		return fmt.Errorf("%w: %s", shared.ErrServer, envelopeMessage(envelope, "request rejected"))
	}

	if result != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, result); err != nil {
			return fmt.Errorf("%w: failed to decode data: %v", shared.ErrServer, err)
		}
	}

	return nil
}

func envelopeMessage(envelope Envelope, fallback string) string {
	if envelope.Message != "" {
		return envelope.Message
	}
	return fallback
}

// Login exchanges credentials for a token and user snapshot.
func (b *BoardService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	body := map[string]string{"email": email, "password": password}

	var data loginData
	if err := b.doRequest(ctx, http.MethodPost, "/login", body, &data); err != nil {
		return "", nil, err
	}

	if data.Token == "" || data.User == nil {
		return "", nil, fmt.Errorf("%w: login response missing token or user", shared.ErrServer)
	}

	return data.Token, data.User, nil
}

// Logout invalidates the session server-side.
func (b *BoardService) Logout(ctx context.Context) error {
	return b.doRequest(ctx, http.MethodPost, "/logout", nil, nil)
}

// Me returns the user for the currently attached token.
func (b *BoardService) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := b.doRequest(ctx, http.MethodGet, "/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Musics lists the approved catalog.
func (b *BoardService) Musics(ctx context.Context) ([]models.Music, error) {
	var musics []models.Music
	if err := b.doRequest(ctx, http.MethodGet, "/musicas", nil, &musics); err != nil {
		return nil, err
	}
	return musics, nil
}

// Top5 lists the top-ranked subset of the catalog.
func (b *BoardService) Top5(ctx context.Context) ([]models.Music, error) {
	var musics []models.Music
	if err := b.doRequest(ctx, http.MethodGet, "/musicas/top5", nil, &musics); err != nil {
		return nil, err
	}
	return musics, nil
}

// Suggest submits a new suggestion.
func (b *BoardService) Suggest(ctx context.Context, create models.SuggestionCreate) (*models.Suggestion, error) {
	var suggestion models.Suggestion
	if err := b.doRequest(ctx, http.MethodPost, "/sugestoes", create, &suggestion); err != nil {
		return nil, err
	}
	return &suggestion, nil
}

// PendingSuggestions lists suggestions awaiting moderation.
func (b *BoardService) PendingSuggestions(ctx context.Context) ([]models.Suggestion, error) {
	var suggestions []models.Suggestion
	if err := b.doRequest(ctx, http.MethodGet, "/sugestoes/pendentes", nil, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// ApproveSuggestion promotes a pending suggestion into the catalog.
func (b *BoardService) ApproveSuggestion(ctx context.Context, id int64) error {
	endpoint := fmt.Sprintf("/sugestoes/%d/aprovar", id)
	return b.doRequest(ctx, http.MethodPatch, endpoint, nil, nil)
}

// RejectSuggestion discards a pending suggestion.
func (b *BoardService) RejectSuggestion(ctx context.Context, id int64) error {
	endpoint := fmt.Sprintf("/sugestoes/%d/reprovar", id)
	return b.doRequest(ctx, http.MethodPatch, endpoint, nil, nil)
}

// DeleteMusic removes a catalog entry.
func (b *BoardService) DeleteMusic(ctx context.Context, id int64) error {
	endpoint := fmt.Sprintf("/musicas/%d", id)
	return b.doRequest(ctx, http.MethodDelete, endpoint, nil, nil)
}

// UpdateMusic edits a catalog entry and returns the server-confirmed fields.
func (b *BoardService) UpdateMusic(ctx context.Context, id int64, update models.MusicUpdate) (*models.Music, error) {
	endpoint := fmt.Sprintf("/musicas/%d", id)

	var music models.Music
	if err := b.doRequest(ctx, http.MethodPatch, endpoint, update, &music); err != nil {
		return nil, err
	}
	return &music, nil
}
