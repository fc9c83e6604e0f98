// package tasks implements the data operations run from the command line.
//
// Operations emit progress updates via channels for non-blocking status reporting to the CLI.
package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/desertthunder/watchlist/internal/formatter"
	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/repositories"
	"github.com/desertthunder/watchlist/internal/services"
	"github.com/desertthunder/watchlist/internal/shared"
)

// Fixture is a seed movie.
type Fixture struct {
	Title string
	Year  string
}

// Fixtures is the fixed data set inserted by [Engine.Forge].
var Fixtures = []Fixture{
	{"My Neighbor Totoro", "1988"},
	{"Dead Poets Society", "1989"},
	{"A Perfect World", "1993"},
	{"Leon", "1994"},
	{"Mahjong", "1996"},
	{"Swallowtail Butterfly", "1996"},
	{"King of Comedy", "1999"},
	{"Devils on the Doorstep", "1999"},
	{"WALL-E", "2008"},
	{"The Pork of Music", "2012"},
}

const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "watchlist"
)

// ForgeOpts sets the admin credentials created by [Engine.Forge]. Empty fields use the defaults.
type ForgeOpts struct {
	Username string
	Password string
}

// ForgeResult holds the rows inserted by [Engine.Forge].
type ForgeResult struct {
	Admin  *models.User
	Movies []*models.Movie
}

// ExportOpts configures [Engine.Export].
type ExportOpts struct {
	Format formatter.Format
	Output string    // File path; empty writes to Writer
	Writer io.Writer // Used when Output is empty
}

// ExportResult describes a finished export.
type ExportResult struct {
	Format formatter.Format
	Count  int
	Path   string // Empty when written to a writer
}

// Engine runs the administrative operations against a database.
type Engine struct {
	db *sql.DB
}

// NewEngine creates an [Engine] for db.
func NewEngine(db *sql.DB) *Engine {
	return &Engine{db: db}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Forge ensures the schema exists, then replaces all data with the admin and [Fixtures] in one transaction.
func (e *Engine) Forge(ctx context.Context, progress chan<- ProgressUpdate, opts ForgeOpts) (*ForgeResult, error) {
	if opts.Username == "" {
		opts.Username = DefaultAdminUsername
	}
	if opts.Password == "" {
		opts.Password = DefaultAdminPassword
	}

	e.sendProgress(progress, migrateUpdate())
	if err := shared.RunMigrations(e.db); err != nil {
		return nil, err
	}

	hash, err := services.HashPassword(opts.Password)
	if err != nil {
		return nil, err
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	e.sendProgress(progress, resetUpdate())
	if err := repositories.NewSessionRepository(tx).DeleteAll(ctx); err != nil {
		return nil, err
	}
	movies := repositories.NewMovieRepository(tx)
	if err := movies.DeleteAll(ctx); err != nil {
		return nil, err
	}
	users := repositories.NewUserRepository(tx)
	if err := users.DeleteAll(ctx); err != nil {
		return nil, err
	}

	admin := models.NewUser(models.DefaultAdminName, opts.Username)
	admin.SetPasswordHash(hash)
	if err := admin.Validate(); err != nil {
		return nil, err
	}
	if err := users.Create(ctx, admin); err != nil {
		return nil, err
	}
	e.sendProgress(progress, adminUpdate(admin))

	result := &ForgeResult{Admin: admin, Movies: make([]*models.Movie, 0, len(Fixtures))}
	for i, f := range Fixtures {
		movie := models.NewMovie(f.Title, f.Year)
		if err := movies.Create(ctx, movie); err != nil {
			return nil, err
		}
		result.Movies = append(result.Movies, movie)
		e.sendProgress(progress, seedUpdate(i+1, len(Fixtures), movie))
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit fixtures: %w", err)
	}
	return result, nil
}

// Export writes every movie in opts.Format to opts.Output or opts.Writer.
func (e *Engine) Export(ctx context.Context, progress chan<- ProgressUpdate, opts ExportOpts) (*ExportResult, error) {
	if opts.Output == "" && opts.Writer == nil {
		return nil, fmt.Errorf("%w: export needs an output path or writer", shared.ErrMissingArgument)
	}

	e.sendProgress(progress, fetchMoviesUpdate())
	movies, err := services.NewWatchlistService(e.db).List(ctx)
	if err != nil {
		return nil, err
	}

	watchlist := formatter.Watchlist{Movies: movies}
	admin, err := services.NewAuthService(e.db, 0).Admin(ctx)
	switch {
	case err == nil:
		watchlist.Owner = admin.Name()
	case !errors.Is(err, shared.ErrNoAdmin):
		return nil, err
	}

	result := &ExportResult{Format: opts.Format, Count: len(movies)}
	if opts.Output != "" {
		path, err := formatter.WriteExportFile(opts.Output, watchlist, opts.Format)
		if err != nil {
			return nil, err
		}
		result.Path = path
	} else if err := formatter.WriteExport(opts.Writer, watchlist, opts.Format); err != nil {
		return nil, err
	}

	e.sendProgress(progress, exportedUpdate(result))
	return result, nil
}
