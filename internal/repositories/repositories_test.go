package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/shared"
	tu "github.com/desertthunder/watchlist/internal/testing"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		db := tu.NewTestDB(t)
		repo := NewUserRepository(db)
		user := models.NewUser("Admin", "admin")

		if err := repo.Create(ctx, user); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}

		if user.ID() == 0 {
			t.Error("user ID should be set after creation")
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := tu.NewTestDB(t)
		repo := NewUserRepository(db)
		user := models.NewUser("Admin", "admin")
		user.SetPasswordHash("hash")

		if err := repo.Create(ctx, user); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}

		retrieved, err := repo.Get(ctx, user.ID())
		if err != nil {
			t.Fatalf("failed to get user: %v", err)
		}

		if retrieved.Username() != "admin" {
			t.Errorf("expected username admin, got %s", retrieved.Username())
		}
		if retrieved.PasswordHash() != "hash" {
			t.Errorf("expected password hash to round trip, got %s", retrieved.PasswordHash())
		}
		if retrieved.CreatedAt().IsZero() {
			t.Error("expected created_at to be scanned")
		}
	})

	t.Run("First", func(t *testing.T) {
		db := tu.NewTestDB(t)
		repo := NewUserRepository(db)

		if _, err := repo.First(ctx); !errors.Is(err, shared.ErrNotFound) {
			t.Fatalf("expected ErrNotFound on empty table, got %v", err)
		}

		first := models.NewUser("First", "first")
		second := models.NewUser("Second", "second")
		for _, u := range []*models.User{first, second} {
			if err := repo.Create(ctx, u); err != nil {
				t.Fatalf("failed to create user: %v", err)
			}
		}

		got, err := repo.First(ctx)
		if err != nil {
			t.Fatalf("failed to get first user: %v", err)
		}
		if got.ID() != first.ID() {
			t.Errorf("expected first user %d, got %d", first.ID(), got.ID())
		}
	})

	t.Run("Update", func(t *testing.T) {
		db := tu.NewTestDB(t)
		repo := NewUserRepository(db)
		user := models.NewUser("Admin", "admin")

		if err := repo.Create(ctx, user); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}

		user.SetName("Grey")
		user.SetUsername("grey")
		user.SetPasswordHash("new-hash")
		if err := repo.Update(ctx, user); err != nil {
			t.Fatalf("failed to update user: %v", err)
		}

		retrieved, err := repo.Get(ctx, user.ID())
		if err != nil {
			t.Fatalf("failed to get user: %v", err)
		}
		if retrieved.Name() != "Grey" || retrieved.Username() != "grey" || retrieved.PasswordHash() != "new-hash" {
			t.Errorf("update not persisted: %s %s %s", retrieved.Name(), retrieved.Username(), retrieved.PasswordHash())
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := tu.NewTestDB(t)
		repo := NewUserRepository(db)
		user := models.NewUser("Admin", "admin")

		if err := repo.Create(ctx, user); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}

		if err := repo.Delete(ctx, user.ID()); err != nil {
			t.Fatalf("failed to delete user: %v", err)
		}

		if _, err := repo.Get(ctx, user.ID()); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("List And Count", func(t *testing.T) {
		db := tu.NewTestDB(t)
		repo := NewUserRepository(db)

		for _, name := range []string{"One", "Two", "Three"} {
			if err := repo.Create(ctx, models.NewUser(name, name)); err != nil {
				t.Fatalf("failed to create user: %v", err)
			}
		}

		users, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("failed to list users: %v", err)
		}
		if len(users) != 3 {
			t.Errorf("expected 3 users, got %d", len(users))
		}
		if users[0].Name() != "One" {
			t.Errorf("expected users ordered by id, got %s first", users[0].Name())
		}

		n, err := repo.Count(ctx)
		if err != nil {
			t.Fatalf("failed to count users: %v", err)
		}
		if n != 3 {
			t.Errorf("expected count 3, got %d", n)
		}

		if err := repo.DeleteAll(ctx); err != nil {
			t.Fatalf("failed to clear users: %v", err)
		}
		if tu.MustCount(t, db, "users") != 0 {
			t.Error("expected users table to be empty")
		}
	})
}

func TestMovieRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create & Get", func(t *testing.T) {
		db := tu.NewTestDB(t)
		repo := NewMovieRepository(db)
		movie := models.NewMovie("My Neighbor Totoro", "1988")

		if err := repo.Create(ctx, movie); err != nil {
			t.Fatalf("failed to create movie: %v", err)
		}

		retrieved, err := repo.Get(ctx, movie.ID())
		if err != nil {
			t.Fatalf("failed to get movie: %v", err)
		}

		if retrieved.Title() != "My Neighbor Totoro" {
			t.Errorf("expected title 'My Neighbor Totoro', got %s", retrieved.Title())
		}
		if retrieved.Year() != "1988" {
			t.Errorf("expected year 1988, got %s", retrieved.Year())
		}
	})

	t.Run("Update", func(t *testing.T) {
		db := tu.NewTestDB(t)
		repo := NewMovieRepository(db)
		movie := models.NewMovie("Leon", "1994")

		if err := repo.Create(ctx, movie); err != nil {
			t.Fatalf("failed to create movie: %v", err)
		}

		before := movie.UpdatedAt()
		time.Sleep(time.Millisecond)

		movie.SetTitle("Leon: The Professional")
		if err := repo.Update(ctx, movie); err != nil {
			t.Fatalf("failed to update movie: %v", err)
		}
		if !movie.UpdatedAt().After(before) {
			t.Error("expected updated_at to advance")
		}

		retrieved, err := repo.Get(ctx, movie.ID())
		if err != nil {
			t.Fatalf("failed to get movie: %v", err)
		}
		if retrieved.Title() != "Leon: The Professional" {
			t.Errorf("expected updated title, got %s", retrieved.Title())
		}
	})

	t.Run("Delete removes only the target", func(t *testing.T) {
		db := tu.NewTestDB(t)
		repo := NewMovieRepository(db)

		keep := models.NewMovie("WALL-E", "2008")
		drop := models.NewMovie("Mahjong", "1996")
		for _, m := range []*models.Movie{keep, drop} {
			if err := repo.Create(ctx, m); err != nil {
				t.Fatalf("failed to create movie: %v", err)
			}
		}

		if err := repo.Delete(ctx, drop.ID()); err != nil {
			t.Fatalf("failed to delete movie: %v", err)
		}

		movies, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("failed to list movies: %v", err)
		}
		if len(movies) != 1 || movies[0].ID() != keep.ID() {
			t.Errorf("expected only %d to remain, got %v", keep.ID(), movies)
		}
	})

	t.Run("List empty", func(t *testing.T) {
		db := tu.NewTestDB(t)
		movies, err := NewMovieRepository(db).List(ctx)
		if err != nil {
			t.Fatalf("failed to list movies: %v", err)
		}
		if movies == nil || len(movies) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", movies)
		}
	})

	t.Run("Count And DeleteAll", func(t *testing.T) {
		db := tu.NewTestDB(t)
		repo := NewMovieRepository(db)
		for _, title := range []string{"A", "B"} {
			if err := repo.Create(ctx, models.NewMovie(title, "2000")); err != nil {
				t.Fatalf("failed to create movie: %v", err)
			}
		}

		n, err := repo.Count(ctx)
		if err != nil || n != 2 {
			t.Fatalf("expected 2 movies, got %d (%v)", n, err)
		}

		if err := repo.DeleteAll(ctx); err != nil {
			t.Fatalf("failed to clear movies: %v", err)
		}
		if n, _ := repo.Count(ctx); n != 0 {
			t.Errorf("expected 0 movies, got %d", n)
		}
	})
}

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*SessionRepository, *models.User) {
		db := tu.NewTestDB(t)
		user := models.NewUser("Admin", "admin")
		if err := NewUserRepository(db).Create(ctx, user); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}
		return NewSessionRepository(db), user
	}

	t.Run("Create & Get", func(t *testing.T) {
		repo, user := setup(t)
		now := time.Now().UTC()
		session := &models.Session{Token: "token-1", UserID: user.ID(), CreatedAt: now, ExpiresAt: now.Add(time.Hour)}

		if err := repo.Create(ctx, session); err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		got, err := repo.Get(ctx, "token-1")
		if err != nil {
			t.Fatalf("failed to get session: %v", err)
		}
		if got.UserID != user.ID() {
			t.Errorf("expected user %d, got %d", user.ID(), got.UserID)
		}
		if got.ExpiresAt.Unix() != session.ExpiresAt.Unix() {
			t.Errorf("expected expiry %v, got %v", session.ExpiresAt, got.ExpiresAt)
		}
	})

	t.Run("Get unknown token", func(t *testing.T) {
		repo, _ := setup(t)
		if _, err := repo.Get(ctx, "missing"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		repo, user := setup(t)
		now := time.Now().UTC()
		if err := repo.Create(ctx, &models.Session{Token: "t", UserID: user.ID(), CreatedAt: now, ExpiresAt: now.Add(time.Hour)}); err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		if err := repo.Delete(ctx, "t"); err != nil {
			t.Fatalf("failed to delete session: %v", err)
		}
		if err := repo.Delete(ctx, "t"); err != nil {
			t.Errorf("deleting twice should not fail: %v", err)
		}
		if _, err := repo.Get(ctx, "t"); err == nil {
			t.Error("expected session to be gone")
		}
	})

	t.Run("DeleteExpired", func(t *testing.T) {
		repo, user := setup(t)
		now := time.Now().UTC()

		sessions := []*models.Session{
			{Token: "old", UserID: user.ID(), CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)},
			{Token: "fresh", UserID: user.ID(), CreatedAt: now, ExpiresAt: now.Add(time.Hour)},
		}
		for _, s := range sessions {
			if err := repo.Create(ctx, s); err != nil {
				t.Fatalf("failed to create session: %v", err)
			}
		}

		n, err := repo.DeleteExpired(ctx, now)
		if err != nil {
			t.Fatalf("failed to prune sessions: %v", err)
		}
		if n != 1 {
			t.Errorf("expected 1 pruned session, got %d", n)
		}
		if _, err := repo.Get(ctx, "fresh"); err != nil {
			t.Errorf("fresh session should survive: %v", err)
		}
	})

	t.Run("Cascade on user delete", func(t *testing.T) {
		db := tu.NewTestDB(t)
		users := NewUserRepository(db)
		user := models.NewUser("Admin", "admin")
		if err := users.Create(ctx, user); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}

		repo := NewSessionRepository(db)
		now := time.Now().UTC()
		if err := repo.Create(ctx, &models.Session{Token: "t", UserID: user.ID(), CreatedAt: now, ExpiresAt: now.Add(time.Hour)}); err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		if err := users.Delete(ctx, user.ID()); err != nil {
			t.Fatalf("failed to delete user: %v", err)
		}
		if tu.MustCount(t, db, "sessions") != 0 {
			t.Error("expected sessions to cascade with their user")
		}
	})

	t.Run("Runs inside a transaction", func(t *testing.T) {
		db := tu.NewTestDB(t)
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			t.Fatalf("failed to begin tx: %v", err)
		}

		if err := NewMovieRepository(tx).Create(ctx, models.NewMovie("Leon", "1994")); err != nil {
			t.Fatalf("failed to create movie in tx: %v", err)
		}
		if err := tx.Rollback(); err != nil {
			t.Fatalf("failed to rollback: %v", err)
		}

		if tu.MustCount(t, db, "movies") != 0 {
			t.Error("expected rollback to discard the insert")
		}
	})
}
