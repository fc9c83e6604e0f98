package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/repositories"
	"github.com/desertthunder/watchlist/internal/shared"
	tu "github.com/desertthunder/watchlist/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	BcryptCost = bcrypt.MinCost
}

func newAuth(t *testing.T) (*AuthService, *repositories.SessionRepository) {
	t.Helper()
	db := tu.NewTestDB(t)
	return NewAuthService(db, time.Hour), repositories.NewSessionRepository(db)
}

func TestHashPassword(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		hash, err := HashPassword("hunter2")
		require.NoError(t, err)
		assert.NotEqual(t, "hunter2", hash)
		assert.True(t, CheckPassword(hash, "hunter2"))
		assert.False(t, CheckPassword(hash, "hunter3"))
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := HashPassword("")
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("Too long", func(t *testing.T) {
		_, err := HashPassword(strings.Repeat("x", 73))
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestAuthService(t *testing.T) {
	ctx := context.Background()

	t.Run("SetAdmin", func(t *testing.T) {
		t.Run("Creates when empty", func(t *testing.T) {
			auth, _ := newAuth(t)

			created, err := auth.SetAdmin(ctx, "admin", "secret")
			require.NoError(t, err)
			assert.True(t, created)

			admin, err := auth.Admin(ctx)
			require.NoError(t, err)
			assert.Equal(t, models.DefaultAdminName, admin.Name())
			assert.Equal(t, "admin", admin.Username())
		})

		t.Run("Updates existing", func(t *testing.T) {
			auth, _ := newAuth(t)
			_, err := auth.SetAdmin(ctx, "admin", "secret")
			require.NoError(t, err)

			created, err := auth.SetAdmin(ctx, "grey", "other")
			require.NoError(t, err)
			assert.False(t, created)

			_, err = auth.Login(ctx, "admin", "secret")
			assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
			_, err = auth.Login(ctx, "grey", "other")
			assert.NoError(t, err)
		})

		t.Run("Rejects empty username", func(t *testing.T) {
			auth, _ := newAuth(t)

			_, err := auth.SetAdmin(ctx, " ", "secret")
			assert.ErrorIs(t, err, shared.ErrInvalidInput)
		})
	})

	t.Run("Login", func(t *testing.T) {
		t.Run("Correct credentials", func(t *testing.T) {
			auth, _ := newAuth(t)
			_, err := auth.SetAdmin(ctx, "admin", "secret")
			require.NoError(t, err)

			session, err := auth.Login(ctx, "admin", "secret")
			require.NoError(t, err)
			assert.NotEmpty(t, session.Token)
			assert.WithinDuration(t, session.CreatedAt.Add(time.Hour), session.ExpiresAt, time.Second)

			user, err := auth.CurrentUser(ctx, session.Token)
			require.NoError(t, err)
			assert.Equal(t, "admin", user.Username())
		})

		tc := []struct {
			name     string
			username string
			password string
			want     error
		}{
			{"Wrong password", "admin", "wrong", shared.ErrInvalidCredentials},
			{"Wrong username", "root", "secret", shared.ErrInvalidCredentials},
			{"Padded username", " admin ", "secret", shared.ErrInvalidCredentials},
			{"Empty username", "", "secret", shared.ErrInvalidInput},
			{"Empty password", "admin", "", shared.ErrInvalidInput},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				auth, _ := newAuth(t)
				_, err := auth.SetAdmin(ctx, "admin", "secret")
				require.NoError(t, err)

				_, err = auth.Login(ctx, tt.username, tt.password)
				assert.ErrorIs(t, err, tt.want)
			})
		}

		t.Run("No admin", func(t *testing.T) {
			auth, _ := newAuth(t)

			_, err := auth.Login(ctx, "admin", "secret")
			assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
		})

		t.Run("Prunes expired sessions", func(t *testing.T) {
			auth, sessions := newAuth(t)
			_, err := auth.SetAdmin(ctx, "admin", "secret")
			require.NoError(t, err)

			old, err := auth.Login(ctx, "admin", "secret")
			require.NoError(t, err)

			auth.now = func() time.Time { return time.Now().UTC().Add(2 * time.Hour) }
			_, err = auth.Login(ctx, "admin", "secret")
			require.NoError(t, err)

			_, err = sessions.Get(ctx, old.Token)
			assert.ErrorIs(t, err, shared.ErrNotFound)
		})
	})

	t.Run("CurrentUser", func(t *testing.T) {
		t.Run("Empty token", func(t *testing.T) {
			auth, _ := newAuth(t)

			_, err := auth.CurrentUser(ctx, "")
			assert.ErrorIs(t, err, shared.ErrNotAuthenticated)
		})

		t.Run("Unknown token", func(t *testing.T) {
			auth, _ := newAuth(t)

			_, err := auth.CurrentUser(ctx, "nope")
			assert.ErrorIs(t, err, shared.ErrNotAuthenticated)
		})

		t.Run("Expired session", func(t *testing.T) {
			auth, _ := newAuth(t)
			_, err := auth.SetAdmin(ctx, "admin", "secret")
			require.NoError(t, err)
			session, err := auth.Login(ctx, "admin", "secret")
			require.NoError(t, err)

			auth.now = func() time.Time { return session.ExpiresAt }
			_, err = auth.CurrentUser(ctx, session.Token)
			assert.ErrorIs(t, err, shared.ErrNotAuthenticated)
			assert.ErrorIs(t, err, shared.ErrSessionExpired)
		})

		t.Run("Logged out", func(t *testing.T) {
			auth, _ := newAuth(t)
			_, err := auth.SetAdmin(ctx, "admin", "secret")
			require.NoError(t, err)
			session, err := auth.Login(ctx, "admin", "secret")
			require.NoError(t, err)

			require.NoError(t, auth.Logout(ctx, session.Token))
			_, err = auth.CurrentUser(ctx, session.Token)
			assert.ErrorIs(t, err, shared.ErrNotAuthenticated)
		})
	})

	t.Run("Admin on empty database", func(t *testing.T) {
		auth, _ := newAuth(t)

		_, err := auth.Admin(ctx)
		assert.ErrorIs(t, err, shared.ErrNoAdmin)
	})

	t.Run("UpdateName", func(t *testing.T) {
		tc := []struct {
			name    string
			input   string
			wantErr bool
		}{
			{"Valid", "Grey Li", false},
			{"Max length", strings.Repeat("n", 20), false},
			{"Empty", "  ", true},
			{"Too long", strings.Repeat("n", 21), true},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				auth, _ := newAuth(t)
				_, err := auth.SetAdmin(ctx, "admin", "secret")
				require.NoError(t, err)
				admin, err := auth.Admin(ctx)
				require.NoError(t, err)

				err = auth.UpdateName(ctx, admin, tt.input)

				reloaded, rerr := auth.Admin(ctx)
				require.NoError(t, rerr)
				if tt.wantErr {
					assert.ErrorIs(t, err, shared.ErrInvalidInput)
					assert.Equal(t, models.DefaultAdminName, reloaded.Name())
					return
				}
				require.NoError(t, err)
				assert.Equal(t, strings.TrimSpace(tt.input), reloaded.Name())
			})
		}
	})
}
