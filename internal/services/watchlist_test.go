package services

import (
	"context"
	"strings"
	"testing"

	"github.com/desertthunder/watchlist/internal/shared"
	tu "github.com/desertthunder/watchlist/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchlistService(t *testing.T) {
	ctx := context.Background()

	t.Run("Add", func(t *testing.T) {
		t.Run("Valid input appears in listing", func(t *testing.T) {
			svc := NewWatchlistService(tu.NewTestDB(t))

			movie, err := svc.Add(ctx, "  WALL-E ", "2008")
			require.NoError(t, err)
			assert.NotZero(t, movie.ID())
			assert.Equal(t, "WALL-E", movie.Title())

			movies, err := svc.List(ctx)
			require.NoError(t, err)
			require.Len(t, movies, 1)
			assert.Equal(t, "WALL-E", movies[0].Title())
		})

		t.Run("Boundary lengths", func(t *testing.T) {
			svc := NewWatchlistService(tu.NewTestDB(t))

			_, err := svc.Add(ctx, strings.Repeat("é", 60), "2008")
			assert.NoError(t, err)
		})

		tc := []struct {
			name  string
			title string
			year  string
		}{
			{"Empty title", "", "2008"},
			{"Whitespace title", "   ", "2008"},
			{"Empty year", "WALL-E", ""},
			{"Title too long", strings.Repeat("a", 61), "2008"},
			{"Year too long", "WALL-E", "20088"},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				svc := NewWatchlistService(tu.NewTestDB(t))

				_, err := svc.Add(ctx, tt.title, tt.year)
				assert.ErrorIs(t, err, shared.ErrInvalidInput)

				movies, err := svc.List(ctx)
				require.NoError(t, err)
				assert.Empty(t, movies, "listing should be unchanged")
			})
		}
	})

	t.Run("Update", func(t *testing.T) {
		t.Run("Valid input", func(t *testing.T) {
			svc := NewWatchlistService(tu.NewTestDB(t))
			movie, err := svc.Add(ctx, "Leon", "1994")
			require.NoError(t, err)

			updated, err := svc.Update(ctx, movie.ID(), "Leon: The Professional", "1994")
			require.NoError(t, err)
			assert.Equal(t, movie.ID(), updated.ID())

			got, err := svc.Get(ctx, movie.ID())
			require.NoError(t, err)
			assert.Equal(t, "Leon: The Professional", got.Title())
		})

		t.Run("Invalid input leaves record unchanged", func(t *testing.T) {
			svc := NewWatchlistService(tu.NewTestDB(t))
			movie, err := svc.Add(ctx, "Leon", "1994")
			require.NoError(t, err)

			_, err = svc.Update(ctx, movie.ID(), "", "1994")
			assert.ErrorIs(t, err, shared.ErrInvalidInput)

			got, err := svc.Get(ctx, movie.ID())
			require.NoError(t, err)
			assert.Equal(t, "Leon", got.Title())
		})

		t.Run("Missing id", func(t *testing.T) {
			svc := NewWatchlistService(tu.NewTestDB(t))

			_, err := svc.Update(ctx, 404, "", "")
			assert.ErrorIs(t, err, shared.ErrNotFound)
		})
	})

	t.Run("Delete", func(t *testing.T) {
		t.Run("Removes exactly that record", func(t *testing.T) {
			svc := NewWatchlistService(tu.NewTestDB(t))
			keep, err := svc.Add(ctx, "Mahjong", "1996")
			require.NoError(t, err)
			drop, err := svc.Add(ctx, "Swallowtail Butterfly", "1996")
			require.NoError(t, err)

			deleted, err := svc.Delete(ctx, drop.ID())
			require.NoError(t, err)
			assert.Equal(t, "Swallowtail Butterfly", deleted.Title())

			movies, err := svc.List(ctx)
			require.NoError(t, err)
			require.Len(t, movies, 1)
			assert.Equal(t, keep.ID(), movies[0].ID())
		})

		t.Run("Missing id", func(t *testing.T) {
			svc := NewWatchlistService(tu.NewTestDB(t))

			_, err := svc.Delete(ctx, 1)
			assert.ErrorIs(t, err, shared.ErrNotFound)
		})
	})
}
