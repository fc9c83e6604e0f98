package main

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/desertthunder/watchlist/internal/shared"
	"github.com/desertthunder/watchlist/internal/tasks"
	"github.com/urfave/cli/v3"
)

// InitDB applies every migration. With --drop the schema is rolled all the way down first.
//
// --rollback undoes only the most recent migration.
func (r *Runner) InitDB(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("drop") && cmd.Bool("rollback") {
		return fmt.Errorf("%w: --drop and --rollback cannot be combined", shared.ErrInvalidArgument)
	}

	db, err := r.openDatabase(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	if cmd.Bool("rollback") {
		return r.rollback(db)
	}

	if cmd.Bool("drop") {
		r.logger.Warn("dropping all tables", "path", r.config.Database.Path)
		if err := shared.DropSchema(db); err != nil {
			return err
		}
	}

	if err := shared.RunMigrations(db); err != nil {
		return err
	}

	version, _, err := shared.MigrationVersion(db)
	if err != nil {
		return err
	}
	r.logger.Info("database initialized", "path", r.config.Database.Path, "version", version)

	return r.writePlainln("Initialized database.")
}

func (r *Runner) rollback(db *sql.DB) error {
	if err := shared.RollbackMigration(db); err != nil {
		return err
	}

	version, _, err := shared.MigrationVersion(db)
	if err != nil {
		return err
	}
	r.logger.Warn("migration rolled back", "path", r.config.Database.Path, "version", version)
	return r.writePlainln("Rolled back to version %d.", version)
}

// Forge replaces all data with the admin and the fixture movies.
func (r *Runner) Forge(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	progress, wait := r.logProgress()
	result, err := tasks.NewEngine(db).Forge(ctx, progress, tasks.ForgeOpts{
		Username: cmd.String("username"),
		Password: cmd.String("password"),
	})
	close(progress)
	wait()

	if err != nil {
		return fmt.Errorf("failed to forge data: %w", err)
	}

	r.logger.Info("forged", "admin", result.Admin.Username(), "movies", len(result.Movies))
	return r.writePlainln("Done.")
}

// logProgress returns a channel whose updates are logged until it is closed, and a func that waits for the drain.
func (r *Runner) logProgress() (chan tasks.ProgressUpdate, func()) {
	progress := make(chan tasks.ProgressUpdate, 50)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progress {
			if update.Total > 0 {
				r.logger.Debug(update.Message, "phase", update.Phase, "step", update.Step, "total", update.Total)
			} else {
				r.logger.Info(update.Message, "phase", update.Phase)
			}
		}
	}()

	return progress, wg.Wait
}
