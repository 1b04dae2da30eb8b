package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/desertthunder/modao/internal/shared"
	"github.com/urfave/cli/v3"
)

// ModeratePending lists suggestions awaiting review.
func (r *Runner) ModeratePending(ctx context.Context, cmd *cli.Command) error {
	r.restore(ctx)

	pending, err := r.moderation.LoadPending(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(pending, true)
	}

	r.writePlainHeader(fmt.Sprintf("Sugestões pendentes (%d)", len(pending)))
	if len(pending) == 0 {
		return r.writePlain("Fila vazia\n")
	}

	for _, s := range pending {
		title := s.Title
		if title == "" {
			title = "(sem título)"
		}
		r.writePlain("#%d %s\n   %s\n", s.RemoteID, title, s.YouTubeURL)
	}

	return nil
}

// ModerateApprove approves a pending suggestion by id.
func (r *Runner) ModerateApprove(ctx context.Context, cmd *cli.Command) error {
	return r.decide(ctx, cmd, "approve")
}

// ModerateReject rejects a pending suggestion by id.
func (r *Runner) ModerateReject(ctx context.Context, cmd *cli.Command) error {
	return r.decide(ctx, cmd, "reject")
}

func (r *Runner) decide(ctx context.Context, cmd *cli.Command, action string) error {
	r.restore(ctx)

	raw := cmd.StringArg("id")
	if raw == "" {
		return fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: id must be a number, got %q", shared.ErrInvalidInput, raw)
	}

	// Load the queue first so the decision can be audited with its URL.
	if _, err := r.moderation.LoadPending(ctx); err != nil {
		return err
	}

	if action == "approve" {
		if err := r.moderation.Approve(ctx, id); err != nil {
			return err
		}
		return r.writePlain("✓ Sugestão %d aprovada e adicionada ao catálogo\n", id)
	}

	if err := r.moderation.Reject(ctx, id); err != nil {
		return err
	}
	return r.writePlain("✓ Sugestão %d reprovada\n", id)
}
