package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/watchlist/internal/server"
	"github.com/desertthunder/watchlist/internal/services"
	"github.com/desertthunder/watchlist/internal/shared"
	"github.com/desertthunder/watchlist/internal/web"
	"github.com/urfave/cli/v3"
)

// Serve runs the web application until SIGINT or SIGTERM.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := r.openDatabase(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	config := r.config.Server
	if cmd.IsSet("host") {
		config.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		config.Port = int(cmd.Int("port"))
	}
	if config.Port < 0 || config.Port > 65535 {
		return fmt.Errorf("%w: port %d is out of range", shared.ErrInvalidArgument, config.Port)
	}

	if err := shared.RunMigrations(db); err != nil {
		return err
	}

	app, err := web.New(web.Options{
		Watchlist: services.NewWatchlistService(db),
		Auth:      services.NewAuthService(db, config.SessionLifetime()),
		Logger:    r.logger,
		Server:    config,
	})
	if err != nil {
		return fmt.Errorf("failed to create web app: %w", err)
	}

	srv := server.New(config.Addr(), app.Routes(), r.logger)
	ln, err := srv.Listen()
	if err != nil {
		return err
	}

	url := "http://" + ln.Addr().String()
	r.writePlainln("Serving watchlist at %s", url)
	if cmd.Bool("open") {
		if err := shared.OpenBrowser(url); err != nil {
			r.logger.Warn("failed to open browser", "url", url, "error", err)
		}
	}

	return srv.Serve(ctx, ln)
}
