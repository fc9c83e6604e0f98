package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/watchlist/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	app := &cli.Command{
		Name:     "watchlist",
		Usage:    "A personal movie watchlist",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		switch {
		case errors.Is(err, shared.ErrNotImplemented):
			logger.Warn("not implemented")
			os.Exit(0)
		case errors.Is(err, shared.ErrCancelled):
			logger.Warn("cancelled")
			os.Exit(1)
		default:
			logger.Fatalf("application error: %v", err)
		}
	}
}
