package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/modao/internal/models"
	"github.com/desertthunder/modao/internal/shared"
	"github.com/desertthunder/modao/internal/youtube"
	"github.com/urfave/cli/v3"
)

// Suggest validates a YouTube URL locally and submits it to the board.
// No session is required; suggestions are open to visitors.
func (r *Runner) Suggest(ctx context.Context, cmd *cli.Command) error {
	url := cmd.StringArg("url")
	if url == "" {
		return fmt.Errorf("%w: url", shared.ErrMissingArgument)
	}

	videoID, err := youtube.ExtractVideoID(url)
	if err != nil {
		return fmt.Errorf("%w (expected a youtube.com or youtu.be link)", err)
	}

	r.logger.Info("submitting suggestion", "video_id", videoID)

	suggestion, err := r.board.Suggest(ctx, models.SuggestionCreate{
		YouTubeURL: url,
		VideoID:    videoID,
	})
	if err != nil {
		return err
	}

	r.writePlain("✓ Sugestão enviada\n")
	if suggestion != nil && suggestion.Title != "" {
		r.writePlain("Título: %s\n", suggestion.Title)
	}
	r.writePlain("Aguardando aprovação de um administrador\n")

	return nil
}
