package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/shared"
)

var _ models.Repository[*models.Movie] = (*MovieRepository)(nil)

const movieColumns = "id, title, year, created_at, updated_at"

// MovieRepository implements [models.Repository] for watchlist [models.Movie] entries.
type MovieRepository struct {
	db DBTX
}

// NewMovieRepository creates a new [MovieRepository] with the given database connection
func NewMovieRepository(db DBTX) *MovieRepository {
	return &MovieRepository{db: db}
}

// Create inserts a new movie and sets its generated ID
func (r *MovieRepository) Create(ctx context.Context, movie *models.Movie) error {
	query := `INSERT INTO movies (title, year, created_at, updated_at) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, movie.Title(), movie.Year(), movie.CreatedAt(), movie.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert movie: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get movie id: %w", err)
	}
	movie.SetID(id)

	return nil
}

// Get retrieves a movie by ID
func (r *MovieRepository) Get(ctx context.Context, id int64) (*models.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = ?`

	movie, err := scanMovie(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: movie %d", shared.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query movie: %w", err)
	}
	return movie, nil
}

// Update modifies the title and year of an existing movie
func (r *MovieRepository) Update(ctx context.Context, movie *models.Movie) error {
	now := time.Now().UTC()

	query := `UPDATE movies SET title = ?, year = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, movie.Title(), movie.Year(), now, movie.ID())
	if err != nil {
		return fmt.Errorf("failed to update movie: %w", err)
	}

	if err := expectAffected(result, fmt.Errorf("%w: movie %d", shared.ErrNotFound, movie.ID())); err != nil {
		return err
	}

	movie.SetUpdatedAt(now)
	return nil
}

// Delete removes a movie by ID
func (r *MovieRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	return expectAffected(result, fmt.Errorf("%w: movie %d", shared.ErrNotFound, id))
}

// DeleteAll removes every movie.
func (r *MovieRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM movies`); err != nil {
		return fmt.Errorf("failed to clear movies: %w", err)
	}
	return nil
}

// List retrieves all movies in insertion order
func (r *MovieRepository) List(ctx context.Context) ([]*models.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer rows.Close()

	movies := []*models.Movie{}
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return movies, nil
}

// Count returns the number of movies.
func (r *MovieRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "movies")
}

// scanMovie scans a single row into a [models.Movie]
func scanMovie(row rowScanner) (*models.Movie, error) {
	var (
		id        int64
		title     string
		year      string
		createdAt time.Time
		updatedAt time.Time
	)

	if err := row.Scan(&id, &title, &year, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	movie := models.NewMovie(title, year)
	movie.SetID(id)
	movie.SetCreatedAt(createdAt)
	movie.SetUpdatedAt(updatedAt)
	return movie, nil
}
