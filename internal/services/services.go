package services

import (
	"context"

	"github.com/desertthunder/watchlist/internal/models"
)

// Watchlist is the movie CRUD surface used by the web handlers and the export command.
type Watchlist interface {
	// List returns every movie ordered by id.
	List(ctx context.Context) ([]*models.Movie, error)

	// Add validates and stores a new movie.
	Add(ctx context.Context, title, year string) (*models.Movie, error)

	// Get retrieves a movie by id.
	Get(ctx context.Context, id int64) (*models.Movie, error)

	// Update validates and overwrites the title and year of an existing movie.
	Update(ctx context.Context, id int64, title, year string) (*models.Movie, error)

	// Delete removes a movie and returns what was removed.
	Delete(ctx context.Context, id int64) (*models.Movie, error)
}

// Authenticator is the session and account surface used by the web handlers.
type Authenticator interface {
	// Login verifies credentials against the admin and starts a session.
	Login(ctx context.Context, username, password string) (*models.Session, error)

	// Logout ends the session identified by token.
	Logout(ctx context.Context, token string) error

	// CurrentUser resolves a session token to its user.
	CurrentUser(ctx context.Context, token string) (*models.User, error)

	// Admin returns the admin user shown in the page header.
	Admin(ctx context.Context) (*models.User, error)

	// UpdateName changes the display name of user.
	UpdateName(ctx context.Context, user *models.User, name string) error
}

var (
	_ Watchlist     = (*WatchlistService)(nil)
	_ Authenticator = (*AuthService)(nil)
)
