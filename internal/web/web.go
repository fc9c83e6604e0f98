// Package web implements the server-rendered watchlist web application.
//
// # Architecture
//
// Pages are embedded html/template files layered over a shared base layout. Each route maps to a
// handler on [App], which calls the [services.Watchlist] and [services.Authenticator] services.
//
// Routes
//
//	GET  /                    → Movie list
//	POST /                    → Add a movie (login required)
//	GET  /movie/edit/{id}     → Edit form (login required)
//	POST /movie/edit/{id}     → Update a movie (login required)
//	POST /movie/delete/{id}   → Delete a movie (login required)
//	GET  /login, POST /login  → Login form and credential check
//	GET  /logout              → End the session (login required)
//	GET  /settings, POST      → Change the display name (login required)
//	GET  /static/*            → Embedded stylesheet
//
// # State Management
//
//   - Session cookie: opaque token resolved to a user through the sessions table
//   - Flash cookie: one-shot messages shown on the next rendered page
//
// Validation failures never produce HTTP errors. They flash a message and redirect back to the form.
// Unknown routes and missing movies render the 404 page, wrong methods the 405 page.
//
// # Testing Strategy
//
// Use httptest against a temp-file database:
//   - Drive full request flows with a cookie jar
//   - Assert flash messages on the page reached after each redirect
package web

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/server"
	"github.com/desertthunder/watchlist/internal/services"
	"github.com/desertthunder/watchlist/internal/shared"
)

const maxRequestBody = 1 << 20

// Options configures an [App].
type Options struct {
	Watchlist services.Watchlist
	Auth      services.Authenticator
	Logger    *log.Logger
	Server    shared.ServerConfig
}

// App holds the dependencies shared by the HTTP handlers.
type App struct {
	watchlist services.Watchlist
	auth      services.Authenticator
	logger    *log.Logger
	cookies   *CookieHelper
	config    shared.ServerConfig
	templates map[string]*template.Template
}

var _ server.Handler = (*App)(nil)

// New parses the embedded templates and returns an [App].
func New(opts Options) (*App, error) {
	if opts.Watchlist == nil || opts.Auth == nil {
		return nil, errors.New("web: watchlist and auth services are required")
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	return &App{
		watchlist: opts.Watchlist,
		auth:      opts.Auth,
		logger:    opts.Logger,
		cookies:   NewCookieHelper(CookieConfig{Secure: opts.Server.CookieSecure}),
		config:    opts.Server,
		templates: templates,
	}, nil
}

// Routes returns the complete handler: middleware stack, routes, and error pages.
func (a *App) Routes() http.Handler {
	r := server.NewRouter()
	r.NotFound(a.notFound)
	r.MethodNotAllowed(a.methodNotAllowed)

	r.Use(
		server.RequestID,
		server.Logger(a.logger),
		server.Recovery(a.logger, a.renderError),
		server.RateLimit(a.config.RateLimit, time.Minute, a.renderError),
		server.RequestSizeLimit(maxRequestBody, a.renderError),
		server.CSRF(server.CSRFConfig{AllowedOrigins: a.config.AllowedOrigins, Render: a.renderError}),
		a.loadSession,
	)
	r.Handler(a)
	return r
}

// Register adds the application routes to r.
func (a *App) Register(r server.Router) {
	r.Handle(http.MethodGet, "/static/*", staticHandler())

	r.Handle(http.MethodGet, "/", http.HandlerFunc(a.index))
	r.Handle(http.MethodGet, "/login", http.HandlerFunc(a.loginForm))

	r.Group(func(r server.Router) {
		r.Use(server.RateLimit(a.config.LoginRateLimit, time.Minute, a.renderError))
		r.Handle(http.MethodPost, "/login", http.HandlerFunc(a.login))
	})

	r.Group(func(r server.Router) {
		r.Use(a.requireLogin)

		r.Handle(http.MethodPost, "/", http.HandlerFunc(a.createMovie))
		r.Handle(http.MethodGet, "/movie/edit/{id}", http.HandlerFunc(a.editForm))
		r.Handle(http.MethodPost, "/movie/edit/{id}", http.HandlerFunc(a.updateMovie))
		r.Handle(http.MethodPost, "/movie/delete/{id}", http.HandlerFunc(a.deleteMovie))
		r.Handle(http.MethodGet, "/logout", http.HandlerFunc(a.logout))
		r.Handle(http.MethodGet, "/settings", http.HandlerFunc(a.settingsForm))
		r.Handle(http.MethodPost, "/settings", http.HandlerFunc(a.updateSettings))
	})
}

// newPage collects what every page shows: the current user, the admin's name and pending flashes.
//
// Flashes are only read here. [App.render] clears them once the page has rendered.
func (a *App) newPage(r *http.Request, title string) *page {
	p := &page{
		Title:  title,
		User:   currentUser(r.Context()),
		Limits: limits{Title: models.MaxTitleLength, Year: models.MaxYearLength, Name: models.MaxNameLength},
	}

	if admin, err := a.auth.Admin(r.Context()); err == nil {
		p.AdminName = admin.Name()
	} else if !errors.Is(err, shared.ErrNoAdmin) {
		a.requestLogger(r).Warn("failed to load admin", "error", err)
	}

	p.Flashes = a.cookies.Flashes(r)
	return p
}

// redirect flashes msg and sends a 303 to path.
func (a *App) redirect(w http.ResponseWriter, r *http.Request, path, msg string) {
	if msg != "" {
		a.cookies.Flash(w, r, msg)
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

func (a *App) requestLogger(r *http.Request) *log.Logger {
	return shared.WithLogger(a.logger, "request_id", server.GetRequestID(r.Context()), "path", r.URL.Path)
}

var statusMessages = map[int]string{
	http.StatusForbidden:             "Forbidden",
	http.StatusNotFound:              "Page Not Found",
	http.StatusMethodNotAllowed:      "Method Not Allowed",
	http.StatusRequestEntityTooLarge: "Request Too Large",
	http.StatusTooManyRequests:       "Too Many Requests",
	http.StatusInternalServerError:   "Internal Server Error",
}

// renderError implements [server.ErrorRenderer] with the error page.
//
// It does not consume flashes and falls back to plain text if the error template fails.
func (a *App) renderError(w http.ResponseWriter, r *http.Request, status int) {
	msg, ok := statusMessages[status]
	if !ok {
		msg = http.StatusText(status)
	}

	data := a.newPage(r, msg)
	data.Flashes = nil
	data.Status = status
	data.Message = msg

	tmpl := a.templates[pageError]
	if tmpl == nil {
		http.Error(w, msg, status)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		a.requestLogger(r).Error("failed to render error page", "error", err)
		http.Error(w, msg, status)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (a *App) notFound(w http.ResponseWriter, r *http.Request) {
	a.renderError(w, r, http.StatusNotFound)
}

func (a *App) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	a.renderError(w, r, http.StatusMethodNotAllowed)
}

// serverError logs err and renders the 500 page.
func (a *App) serverError(w http.ResponseWriter, r *http.Request, err error) {
	a.requestLogger(r).Error("request failed", "error", err)
	a.renderError(w, r, http.StatusInternalServerError)
}

type userKey struct{}

func withUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// currentUser returns the logged-in user, or nil for anonymous requests.
func currentUser(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey{}).(*models.User)
	return u
}
