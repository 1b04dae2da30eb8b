// package services defines interface Board for interacting with the
// suggestion board REST API.
package services

import (
	"context"

	"github.com/desertthunder/modao/internal/models"
)

// Board defines the client contract for the suggestion board API.
//
// All responses use the envelope {success, data?, message?}. Protected
// operations require a bearer token; a 401 on any of them fires the client's
// unauthorized hook exactly once per response so session state can be cleared
// centrally.
type Board interface {
	// Login exchanges credentials for a token and user snapshot.
	Login(ctx context.Context, email, password string) (string, *models.User, error)

	// Logout invalidates the session server-side.
	Logout(ctx context.Context) error

	// Me returns the user for the currently attached token.
	Me(ctx context.Context) (*models.User, error)

	// Musics lists the approved catalog.
	Musics(ctx context.Context) ([]models.Music, error)

	// Top5 lists the top-ranked subset of the catalog.
	Top5(ctx context.Context) ([]models.Music, error)

	// Suggest submits a new suggestion.
	Suggest(ctx context.Context, create models.SuggestionCreate) (*models.Suggestion, error)

	// PendingSuggestions lists suggestions awaiting moderation.
	PendingSuggestions(ctx context.Context) ([]models.Suggestion, error)

	// ApproveSuggestion promotes a pending suggestion into the catalog.
	ApproveSuggestion(ctx context.Context, id int64) error

	// RejectSuggestion discards a pending suggestion.
	RejectSuggestion(ctx context.Context, id int64) error

	// DeleteMusic removes a catalog entry.
	DeleteMusic(ctx context.Context, id int64) error

	// UpdateMusic edits a catalog entry and returns the server-confirmed fields.
	UpdateMusic(ctx context.Context, id int64, update models.MusicUpdate) (*models.Music, error)

	// SetToken attaches a bearer token to subsequent protected requests.
	SetToken(token string)

	// ClearToken detaches the bearer token.
	ClearToken()

	// OnUnauthorized registers the hook fired when a protected call gets a 401.
	OnUnauthorized(fn func())
}
