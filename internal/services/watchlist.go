package services

import (
	"context"
	"fmt"

	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/repositories"
)

// WatchlistService manages movie entries.
type WatchlistService struct {
	movies *repositories.MovieRepository
}

// NewWatchlistService creates a [WatchlistService] backed by db.
func NewWatchlistService(db repositories.DBTX) *WatchlistService {
	return &WatchlistService{movies: repositories.NewMovieRepository(db)}
}

func (s *WatchlistService) List(ctx context.Context) ([]*models.Movie, error) {
	return s.movies.List(ctx)
}

// Add rejects empty or oversized values with [shared.ErrInvalidInput] and stores the movie otherwise.
func (s *WatchlistService) Add(ctx context.Context, title, year string) (*models.Movie, error) {
	movie := models.NewMovie(title, year)
	if err := movie.Validate(); err != nil {
		return nil, err
	}

	if err := s.movies.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("failed to add movie: %w", err)
	}
	return movie, nil
}

func (s *WatchlistService) Get(ctx context.Context, id int64) (*models.Movie, error) {
	return s.movies.Get(ctx, id)
}

// Update looks the movie up first, so a missing id reports [shared.ErrNotFound] before any validation error.
func (s *WatchlistService) Update(ctx context.Context, id int64, title, year string) (*models.Movie, error) {
	movie, err := s.movies.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := models.ValidateMovieInput(title, year); err != nil {
		return nil, err
	}

	movie.SetTitle(title)
	movie.SetYear(year)
	if err := s.movies.Update(ctx, movie); err != nil {
		return nil, fmt.Errorf("failed to update movie: %w", err)
	}
	return movie, nil
}

func (s *WatchlistService) Delete(ctx context.Context, id int64) (*models.Movie, error) {
	movie, err := s.movies.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.movies.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete movie: %w", err)
	}
	return movie, nil
}
