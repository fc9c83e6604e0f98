package main

import (
	"context"

	"github.com/desertthunder/watchlist/internal/formatter"
	"github.com/desertthunder/watchlist/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Export writes the watchlist to stdout, or to --output.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	db, err := r.openDatabase(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	progress, wait := r.logProgress()
	result, err := tasks.NewEngine(db).Export(ctx, progress, tasks.ExportOpts{
		Format: format,
		Output: cmd.String("output"),
		Writer: r.output,
	})
	close(progress)
	wait()

	if err != nil {
		return err
	}

	if result.Path != "" {
		return r.writePlainln("Exported %d movies to %s", result.Count, result.Path)
	}
	return nil
}
