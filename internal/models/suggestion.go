package models

import (
	"fmt"
	"time"
)

// Moderation decision actions.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// Suggestion is a visitor-submitted YouTube link awaiting an admin decision.
type Suggestion struct {
	RemoteID   int64     `json:"id"`
	Title      string    `json:"titulo,omitempty"`
	YouTubeURL string    `json:"youtube_url"`
	CreatedAt  time.Time `json:"created_at"`
}

// SuggestionCreate is the POST body for submitting a new suggestion.
type SuggestionCreate struct {
	YouTubeURL string `json:"youtube_url"`
	VideoID    string `json:"video_id"`
}

// Decision is a locally persisted audit record of an approve/reject action
// taken from this machine.
type Decision struct {
	id           string
	sequence     int
	suggestionID int64
	action       string
	youtubeURL   string
	decidedBy    string
	decidedAt    time.Time
	createdAt    time.Time
	updatedAt    time.Time
	deletedAt    *time.Time
}

// NewDecision creates an audit record for a moderation action.
func NewDecision(sequence int, suggestionID int64, action, youtubeURL, decidedBy string) *Decision {
	now := time.Now()
	return &Decision{
		sequence:     sequence,
		suggestionID: suggestionID,
		action:       action,
		youtubeURL:   youtubeURL,
		decidedBy:    decidedBy,
		decidedAt:    now,
		createdAt:    now,
		updatedAt:    now,
	}
}

func (d *Decision) ID() string            { return d.id }
func (d *Decision) Sequence() int         { return d.sequence }
func (d *Decision) SuggestionID() int64   { return d.suggestionID }
func (d *Decision) Action() string        { return d.action }
func (d *Decision) YouTubeURL() string    { return d.youtubeURL }
func (d *Decision) DecidedBy() string     { return d.decidedBy }
func (d *Decision) DecidedAt() time.Time  { return d.decidedAt }
func (d *Decision) CreatedAt() time.Time  { return d.createdAt }
func (d *Decision) UpdatedAt() time.Time  { return d.updatedAt }
func (d *Decision) DeletedAt() *time.Time { return d.deletedAt }

func (d *Decision) SetID(id string)           { d.id = id }
func (d *Decision) SetDecidedAt(t time.Time)  { d.decidedAt = t }
func (d *Decision) SetCreatedAt(t time.Time)  { d.createdAt = t }
func (d *Decision) SetUpdatedAt(t time.Time)  { d.updatedAt = t }
func (d *Decision) SetDeletedAt(t *time.Time) { d.deletedAt = t }

// Validate checks required fields before persistence.
func (d *Decision) Validate() error {
	if d.suggestionID <= 0 {
		return fmt.Errorf("decision requires a suggestion id")
	}
	if d.action != ActionApprove && d.action != ActionReject {
		return fmt.Errorf("invalid decision action: %s", d.action)
	}
	return nil
}
