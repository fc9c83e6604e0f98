package web

import (
	"errors"
	"net/http"

	"github.com/desertthunder/watchlist/internal/shared"
)

// loadSession resolves the session cookie to a user and stores it in the request context.
//
// Invalid, expired or orphaned tokens are cleared and the request continues anonymously.
func (a *App) loadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := a.cookies.SessionToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := a.auth.CurrentUser(r.Context(), token)
		switch {
		case err == nil:
			r = r.WithContext(withUser(r.Context(), user))
		case errors.Is(err, shared.ErrNotAuthenticated):
			a.cookies.ClearSession(w)
		default:
			a.requestLogger(r).Error("failed to load session", "error", err)
		}

		next.ServeHTTP(w, r)
	})
}

// requireLogin redirects anonymous requests to the login page.
func (a *App) requireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r.Context()) == nil {
			a.redirect(w, r, "/login", msgLoginRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}
