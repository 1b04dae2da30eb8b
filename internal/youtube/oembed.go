package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/modao/internal/shared"
	"golang.org/x/time/rate"
)

const defaultOEmbedURL = "https://www.youtube.com/oembed"

// VideoMeta holds metadata derived for a video.
//
// ViewsEstimated marks the view count as a placeholder rather than a real
// figure: the oEmbed endpoint does not expose view counts, so enrichment
// never produces an authoritative number. The board's response to an update
// always wins over these fields.
type VideoMeta struct {
	VideoID        string
	Title          string
	ThumbnailURL   string
	Views          int64
	ViewsEstimated bool
}

// Enricher looks up video metadata from the unauthenticated oEmbed endpoint.
//
// Lookups are rate limited and best-effort: callers that must not block on
// enrichment failures should use [Enricher.Enrich], which falls back to
// deterministic metadata.
type Enricher struct {
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewEnricher creates an Enricher against the given oEmbed endpoint.
// An empty endpoint uses the public YouTube one; rps <= 0 disables throttling.
func NewEnricher(endpoint string, client *http.Client, rps float64) *Enricher {
	if endpoint == "" {
		endpoint = defaultOEmbedURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	var limiter *rate.Limiter
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}

	return &Enricher{
		endpoint:   endpoint,
		httpClient: client,
		limiter:    limiter,
	}
}

// Lookup fetches oEmbed metadata for a video ID.
func (e *Enricher) Lookup(ctx context.Context, videoID string) (*VideoMeta, error) {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrNetwork, err)
		}
	}

	watchURL := fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
	lookupURL := fmt.Sprintf("%s?url=%s&format=json", e.endpoint, url.QueryEscape(watchURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: oembed status %d", shared.ErrServer, resp.StatusCode)
	}

	var payload struct {
		Title        string `json:"title"`
		ThumbnailURL string `json:"thumbnail_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode oembed response: %w", err)
	}

	meta := &VideoMeta{
		VideoID:        videoID,
		Title:          payload.Title,
		ThumbnailURL:   payload.ThumbnailURL,
		Views:          0,
		ViewsEstimated: true,
	}

	if meta.ThumbnailURL == "" {
		meta.ThumbnailURL = ThumbnailURL(videoID)
	}

	return meta, nil
}

// Enrich returns metadata for a video ID, falling back to deterministic
// placeholder values when the lookup fails. Never returns an error.
func (e *Enricher) Enrich(ctx context.Context, videoID string) *VideoMeta {
	meta, err := e.Lookup(ctx, videoID)
	if err != nil {
		return FallbackMeta(videoID)
	}
	return meta
}

// FallbackMeta returns the deterministic metadata used when enrichment is
// unavailable: a title derived from the video ID, the maxresdefault
// thumbnail, and a zero view count flagged as estimated.
func FallbackMeta(videoID string) *VideoMeta {
	return &VideoMeta{
		VideoID:        videoID,
		Title:          fmt.Sprintf("Vídeo %s", videoID),
		ThumbnailURL:   ThumbnailURL(videoID),
		Views:          0,
		ViewsEstimated: true,
	}
}
