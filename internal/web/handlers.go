package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/desertthunder/watchlist/internal/server"
	"github.com/desertthunder/watchlist/internal/shared"
)

// Flash messages
const (
	msgInvalidInput    = "Invalid input."
	msgCreated         = "Item created."
	msgUpdated         = "Item updated."
	msgLoginSuccess    = "Login success."
	msgBadCredentials  = "Invalid username or password."
	msgGoodbye         = "Goodbye."
	msgSettingsUpdated = "Settings updated."
	msgLoginRequired   = "Please log in to access this page."
	msgDeletedFormat   = "Item \"%s\" deleted."
)

func (a *App) index(w http.ResponseWriter, r *http.Request) {
	movies, err := a.watchlist.List(r.Context())
	if err != nil {
		a.serverError(w, r, err)
		return
	}

	data := a.newPage(r, "")
	data.Movies = movies
	a.render(w, r, http.StatusOK, pageIndex, data)
}

func (a *App) createMovie(w http.ResponseWriter, r *http.Request) {
	_, err := a.watchlist.Add(r.Context(), r.PostFormValue("title"), r.PostFormValue("year"))
	switch {
	case errors.Is(err, shared.ErrInvalidInput):
		a.redirect(w, r, "/", msgInvalidInput)
	case err != nil:
		a.serverError(w, r, err)
	default:
		a.redirect(w, r, "/", msgCreated)
	}
}

func (a *App) editForm(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		a.notFound(w, r)
		return
	}

	movie, err := a.watchlist.Get(r.Context(), id)
	if errors.Is(err, shared.ErrNotFound) {
		a.notFound(w, r)
		return
	}
	if err != nil {
		a.serverError(w, r, err)
		return
	}

	data := a.newPage(r, "Edit")
	data.Movie = movie
	a.render(w, r, http.StatusOK, pageEdit, data)
}

func (a *App) updateMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		a.notFound(w, r)
		return
	}

	_, err := a.watchlist.Update(r.Context(), id, r.PostFormValue("title"), r.PostFormValue("year"))
	switch {
	case errors.Is(err, shared.ErrNotFound):
		a.notFound(w, r)
	case errors.Is(err, shared.ErrInvalidInput):
		a.redirect(w, r, fmt.Sprintf("/movie/edit/%d", id), msgInvalidInput)
	case err != nil:
		a.serverError(w, r, err)
	default:
		a.redirect(w, r, "/", msgUpdated)
	}
}

func (a *App) deleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		a.notFound(w, r)
		return
	}

	movie, err := a.watchlist.Delete(r.Context(), id)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		a.notFound(w, r)
	case err != nil:
		a.serverError(w, r, err)
	default:
		a.redirect(w, r, "/", fmt.Sprintf(msgDeletedFormat, movie.Title()))
	}
}

func (a *App) loginForm(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, http.StatusOK, pageLogin, a.newPage(r, "Login"))
}

func (a *App) login(w http.ResponseWriter, r *http.Request) {
	username, password := r.PostFormValue("username"), r.PostFormValue("password")
	if username == "" || password == "" {
		a.redirect(w, r, "/login", msgInvalidInput)
		return
	}

	session, err := a.auth.Login(r.Context(), username, password)
	switch {
	case errors.Is(err, shared.ErrInvalidCredentials), errors.Is(err, shared.ErrInvalidInput):
		a.requestLogger(r).Warn("login failed", "username", username)
		a.redirect(w, r, "/login", msgBadCredentials)
		return
	case err != nil:
		a.serverError(w, r, err)
		return
	}

	a.cookies.SetSession(w, session.Token, a.config.SessionLifetime())
	a.requestLogger(r).Info("login", "user_id", session.UserID)
	a.redirect(w, r, "/", msgLoginSuccess)
}

func (a *App) logout(w http.ResponseWriter, r *http.Request) {
	if err := a.auth.Logout(r.Context(), a.cookies.SessionToken(r)); err != nil {
		a.serverError(w, r, err)
		return
	}

	a.cookies.ClearSession(w)
	a.redirect(w, r, "/", msgGoodbye)
}

func (a *App) settingsForm(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, http.StatusOK, pageSettings, a.newPage(r, "Settings"))
}

func (a *App) updateSettings(w http.ResponseWriter, r *http.Request) {
	err := a.auth.UpdateName(r.Context(), currentUser(r.Context()), r.PostFormValue("name"))
	switch {
	case errors.Is(err, shared.ErrInvalidInput):
		a.redirect(w, r, "/settings", msgInvalidInput)
	case err != nil:
		a.serverError(w, r, err)
	default:
		a.redirect(w, r, "/", msgSettingsUpdated)
	}
}

// movieID parses the {id} path parameter. Anything but a positive integer is treated as not found.
func movieID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(server.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
