package tasks

import (
	"fmt"

	"github.com/desertthunder/watchlist/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	Migrate Phase = iota
	Reset
	CreateAdmin
	SeedMovies
	FetchMovies
	WriteExport
)

func (p Phase) String() string {
	switch p {
	case Migrate:
		return "migrate"
	case Reset:
		return "reset"
	case CreateAdmin:
		return "create_admin"
	case SeedMovies:
		return "seed_movies"
	case FetchMovies:
		return "fetch_movies"
	case WriteExport:
		return "write_export"
	default:
		return ""
	}
}

func migrateUpdate() ProgressUpdate {
	return ProgressUpdate{Phase: Migrate, Step: 1, Total: 1, Message: "Applying migrations..."}
}

func resetUpdate() ProgressUpdate {
	return ProgressUpdate{Phase: Reset, Step: 1, Total: 1, Message: "Clearing sessions, movies and users..."}
}

func adminUpdate(u *models.User) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreateAdmin,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Created admin %q", u.Username()),
		Data:    u,
	}
}

func seedUpdate(step, total int, m *models.Movie) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SeedMovies,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s (%s)", step, total, m.Title(), m.Year()),
		Data:    m,
	}
}

func fetchMoviesUpdate() ProgressUpdate {
	return ProgressUpdate{Phase: FetchMovies, Step: 1, Total: 1, Message: "Reading watchlist..."}
}

func exportedUpdate(r *ExportResult) ProgressUpdate {
	msg := fmt.Sprintf("Exported %d movies as %s", r.Count, r.Format)
	if r.Path != "" {
		msg += " to " + r.Path
	}
	return ProgressUpdate{Phase: WriteExport, Step: 1, Total: 1, Message: msg, Data: r}
}
