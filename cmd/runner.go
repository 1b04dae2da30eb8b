package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/modao/internal/services"
	"github.com/desertthunder/modao/internal/session"
	"github.com/desertthunder/modao/internal/shared"
	"github.com/desertthunder/modao/internal/tasks"
	"github.com/desertthunder/modao/internal/youtube"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	board      services.Board
	store      *session.Store
	enricher   *youtube.Enricher
	moderation *tasks.ModerationEngine
	catalog    *tasks.CatalogEngine
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config   *shared.Config
	Board    services.Board
	Store    *session.Store
	Enricher *youtube.Enricher
	Audit    tasks.AuditLog
	Logger   *log.Logger
	Output   io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Board == nil {
		opts.Board = services.NewBoardService(opts.Config.API.BaseURL, nil)
	}
	if opts.Store == nil {
		opts.Store = session.NewStore(opts.Board, opts.Config.SessionFile(), opts.Logger)
	}
	if opts.Enricher == nil {
		opts.Enricher = youtube.NewEnricher(opts.Config.YouTube.OEmbedURL, nil, opts.Config.YouTube.RateLimit)
	}

	moderation := tasks.NewModerationEngine(opts.Board, opts.Store, opts.Audit, opts.Logger)
	catalog := tasks.NewCatalogEngine(opts.Board, opts.Store, opts.Enricher, opts.Logger)

	return &Runner{
		config:     opts.Config,
		board:      opts.Board,
		store:      opts.Store,
		enricher:   opts.Enricher,
		moderation: moderation,
		catalog:    catalog,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger swaps the runner's logger, e.g. to redirect output to a file
// while the TUI owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// restore revalidates any persisted session before a command that cares
// about auth state runs. Safe to call repeatedly; only the first call does
// network work.
func (r *Runner) restore(ctx context.Context) session.State {
	return r.store.Restore(ctx)
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, suggestCommand, catalogCommand, moderateCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
