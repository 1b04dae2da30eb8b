package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/desertthunder/modao/internal/repositories"
	"github.com/desertthunder/modao/internal/services"
	"github.com/desertthunder/modao/internal/shared"
	"github.com/desertthunder/modao/internal/tasks"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	timeout := time.Duration(config.API.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	board := services.NewBoardService(config.API.BaseURL, &http.Client{Timeout: timeout})

	// The decision audit trail is optional: it activates once `setup
	// database` has created the local cache file.
	var audit tasks.AuditLog
	if _, err := os.Stat(config.Database.Path); err == nil {
		if db, err := shared.NewDatabase(config.Database.Path); err == nil {
			shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
			audit = repositories.NewDecisionRepository(db)
		} else {
			logger.Warnf("local database unavailable: %v", err)
		}
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Board:  board,
		Audit:  audit,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "modao",
		Usage:    "Suggestion board client: submit, curate, and moderate community songs",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
