package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/watchlist/internal/services"
	"github.com/desertthunder/watchlist/internal/shared"
	"github.com/urfave/cli/v3"
)

// Admin creates the admin user, or overwrites the credentials of the existing one.
//
// Missing --username or --password values are prompted for interactively.
func (r *Runner) Admin(ctx context.Context, cmd *cli.Command) error {
	username := strings.TrimSpace(cmd.String("username"))
	password := cmd.String("password")

	db, err := r.openDatabase(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	if username == "" || password == "" {
		creds, err := r.prompt(ctx, username)
		if err != nil {
			return err
		}
		username, password = creds.Username, creds.Password
	}

	if err := shared.RunMigrations(db); err != nil {
		return err
	}

	auth := services.NewAuthService(db, 0)
	_, err = auth.Admin(ctx)
	switch {
	case errors.Is(err, shared.ErrNoAdmin):
		err = r.writePlainln("Creating user...")
	case err == nil:
		err = r.writePlainln("Updating user...")
	}
	if err != nil {
		return err
	}

	created, err := auth.SetAdmin(ctx, username, password)
	if err != nil {
		return fmt.Errorf("failed to save admin: %w", err)
	}

	r.logger.Info("admin saved", "username", username, "created", created)
	return r.writePlainln("Done.")
}
