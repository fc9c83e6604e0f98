package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

var _ Router = (*ChiRouter)(nil)

// ChiRouter implements the [Router] interface on top of [chi.Router].
//
// All middleware must be added before the first route, as chi requires.
type ChiRouter struct {
	mux chi.Router
}

// NewRouter creates a new [ChiRouter] instance.
func NewRouter() *ChiRouter {
	return &ChiRouter{mux: chi.NewRouter()}
}

// Use adds [Middleware] to the router's middleware stack, applied in the order it's added.
func (r *ChiRouter) Use(middleware ...Middleware) {
	for _, mw := range middleware {
		r.mux.Use(mw)
	}
}

// Handle registers a handler for the specified HTTP method and path.
//
// Requests to a known path with another method get the router's 405 handler.
func (r *ChiRouter) Handle(method, path string, handler http.Handler) {
	r.mux.Method(method, path, handler)
}

// Handler registers a custom [Handler] implementation.
func (r *ChiRouter) Handler(handler Handler) {
	handler.Register(r)
}

// Group creates an inline router sharing this router's path space.
// Middleware added inside fn applies only to routes registered inside fn.
func (r *ChiRouter) Group(fn func(r Router)) {
	r.mux.Group(func(cr chi.Router) {
		fn(&ChiRouter{mux: cr})
	})
}

// NotFound sets the handler for unmatched paths.
func (r *ChiRouter) NotFound(h http.HandlerFunc) {
	r.mux.NotFound(h)
}

// MethodNotAllowed sets the handler for a matched path with an unregistered method.
func (r *ChiRouter) MethodNotAllowed(h http.HandlerFunc) {
	r.mux.MethodNotAllowed(h)
}

// ServeHTTP implements [http.Handler] for the entire router.
func (r *ChiRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// URLParam returns the named path parameter captured by the router.
func URLParam(req *http.Request, key string) string {
	return chi.URLParam(req, key)
}
