package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/modao/internal/session"
	"github.com/desertthunder/modao/internal/shared"
	"github.com/desertthunder/modao/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for moderation.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.restore(ctx) != session.Authenticated {
		return fmt.Errorf("%w: run 'modao auth login' first", shared.ErrNotAuthenticated)
	}
	if !r.store.IsAdmin() {
		return fmt.Errorf("%w: the TUI is for moderators", shared.ErrNotAdmin)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/modao-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.moderation, r.catalog)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
