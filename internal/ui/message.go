package ui

import (
	"github.com/desertthunder/modao/internal/models"
)

// pendingLoadedMsg carries a refreshed pending queue. gen ties the reply to
// the load that requested it so stale responses are discarded.
type pendingLoadedMsg struct {
	gen         int
	suggestions []models.Suggestion
	err         error
}

// catalogLoadedMsg carries a refreshed catalog listing.
type catalogLoadedMsg struct {
	gen    int
	musics []models.Music
	err    error
}

// decisionDoneMsg reports a settled approve/reject call.
type decisionDoneMsg struct {
	gen    int
	id     int64
	action string
	err    error
}

// deleteDoneMsg reports a settled catalog delete.
type deleteDoneMsg struct {
	gen int
	id  int64
	err error
}

// settledRowExpiredMsg fires after the outcome of a settled row has been
// shown long enough; the list then drops the row.
type settledRowExpiredMsg struct {
	gen int
	id  int64
}

// browserOpenedMsg reports the result of launching the system browser.
type browserOpenedMsg struct {
	err error
}
