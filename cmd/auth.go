package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/modao/internal/session"
	"github.com/desertthunder/modao/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin exchanges credentials for a session token and persists it.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	password := cmd.String("password")

	if password == "" {
		return fmt.Errorf("%w: password (use --password or MODAO_PASSWORD)", shared.ErrMissingArgument)
	}

	r.logger.Info("logging in", "email", email)

	if err := r.store.Login(ctx, email, password); err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			return fmt.Errorf("%w: check email and password", shared.ErrInvalidCredentials)
		}
		return err
	}

	user := r.store.CurrentUser()
	r.writePlain("✓ Autenticado como %s\n", user.Email)
	if user.IsAdmin() {
		r.writePlain("Perfil: administrador\n")
	} else {
		r.writePlain("Perfil: visitante\n")
	}

	return nil
}

// AuthLogout invalidates the session server-side and clears local state.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	r.restore(ctx)

	if !r.store.IsAuthenticated() {
		return r.writePlain("Nenhuma sessão ativa\n")
	}

	r.store.Logout(ctx)
	return r.writePlain("✓ Sessão encerrada\n")
}

// AuthWhoami shows the authenticated user.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	r.restore(ctx)

	user := r.store.CurrentUser()
	if user == nil {
		return fmt.Errorf("%w: run 'modao auth login'", shared.ErrNotAuthenticated)
	}

	if cmd.Bool("json") {
		return r.writeJSON(user, true)
	}

	r.writePlainHeader("Sessão atual")
	r.writePlain("Nome: %s\n", user.Name)
	r.writePlain("Email: %s\n", user.Email)
	if user.IsAdmin() {
		r.writePlain("Perfil: administrador\n")
	} else {
		r.writePlain("Perfil: visitante\n")
	}

	return nil
}

// AuthImport adopts a bearer token captured from a browser session.
func (r *Runner) AuthImport(ctx context.Context, cmd *cli.Command) error {
	curlCmd := cmd.String("curl")
	curlFile := cmd.String("curl-file")

	if curlCmd == "" && curlFile == "" {
		return fmt.Errorf("%w: either --curl or --curl-file must be provided", shared.ErrMissingArgument)
	}
	if curlCmd != "" && curlFile != "" {
		return fmt.Errorf("%w: cannot specify both --curl and --curl-file", shared.ErrInvalidFlag)
	}

	var request *shared.CurlRequest
	var err error

	if curlFile != "" {
		request, err = shared.ParseCurlFile(curlFile)
		if err != nil {
			return fmt.Errorf("failed to parse cURL file: %w", err)
		}
		r.logger.Info("parsed cURL from file", "file", curlFile)
	} else {
		request, err = shared.ParseCurlCommand([]byte(curlCmd))
		if err != nil {
			return fmt.Errorf("failed to parse cURL command: %w", err)
		}
		r.logger.Info("parsed cURL command")
	}

	token, err := request.BearerToken()
	if err != nil {
		return fmt.Errorf("no bearer token in cURL command: %w", err)
	}

	user, err := r.store.ImportToken(ctx, token)
	if err != nil {
		return fmt.Errorf("token rejected by the board: %w", err)
	}

	r.writePlain("✓ Sessão importada para %s\n", user.Email)
	return nil
}

// AuthStatus shows the session lifecycle state.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	state := r.restore(ctx)

	r.writePlain("Estado: %s\n", state)
	if state == session.Authenticated {
		user := r.store.CurrentUser()
		r.writePlain("Usuário: %s\n", user.Email)
		if r.store.IsAdmin() {
			r.writePlain("Moderação: habilitada\n")
		} else {
			r.writePlain("Moderação: indisponível\n")
		}
	}

	return nil
}
