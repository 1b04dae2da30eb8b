// package tasks implements the moderation and catalog engines.
//
// Engines own an in-memory cache of the server state relevant to their view
// and reconcile it after every confirmed mutation; the server is always the
// source of truth. Mutations are locked per entity id so a double keypress
// can never double-submit, while other entries stay actionable.
package tasks

import (
	"github.com/desertthunder/modao/internal/models"
	"github.com/desertthunder/modao/internal/session"
	"github.com/desertthunder/modao/internal/shared"
)

// Status describes the moderation lifecycle of a single suggestion.
type Status int

const (
	StatusPending Status = iota
	StatusApproving
	StatusRejecting
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusApproving:
		return "approving"
	case StatusRejecting:
		return "rejecting"
	default:
		return ""
	}
}

// AuditLog records moderation decisions taken from this machine.
// Implemented by repositories.DecisionRepository; a nil log disables auditing.
type AuditLog interface {
	Create(decision *models.Decision) error
}

// requireAdmin gates mutating operations on a settled, administrative session.
func requireAdmin(store *session.Store) error {
	switch store.State() {
	case session.Unknown, session.Restoring:
		return shared.ErrSessionRestoring
	case session.Anonymous:
		return shared.ErrNotAuthenticated
	}

	if !store.IsAdmin() {
		return shared.ErrNotAdmin
	}

	return nil
}
