package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/desertthunder/watchlist/internal/models"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

const (
	pageIndex    = "index.html"
	pageEdit     = "edit.html"
	pageLogin    = "login.html"
	pageSettings = "settings.html"
	pageError    = "error.html"
)

var pages = []string{pageIndex, pageEdit, pageLogin, pageSettings, pageError}

// limits feeds the maxlength attributes of the forms.
type limits struct {
	Title int
	Year  int
	Name  int
}

// page is the data passed to every template.
type page struct {
	Title     string
	User      *models.User
	AdminName string
	Flashes   []string
	Limits    limits

	Movies []*models.Movie
	Movie  *models.Movie

	Status  int
	Message string
}

// parseTemplates builds one template set per page, each layered over base.html.
func parseTemplates() (map[string]*template.Template, error) {
	out := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		tmpl, err := template.ParseFS(templateFiles, "templates/base.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		out[name] = tmpl
	}
	return out, nil
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// render executes name into a buffer so a template error can still produce a clean 500.
func (a *App) render(w http.ResponseWriter, r *http.Request, status int, name string, data *page) {
	tmpl, ok := a.templates[name]
	if !ok {
		a.serverError(w, r, fmt.Errorf("unknown template %s", name))
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		a.serverError(w, r, fmt.Errorf("failed to render %s: %w", name, err))
		return
	}

	if len(data.Flashes) > 0 {
		a.cookies.ClearFlashes(w)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
