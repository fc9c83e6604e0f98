package server

import (
	"context"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"
)

type contextKey string

const requestIDKey contextKey = "requestID"

// RequestIDHeader is read from incoming requests and echoed on responses.
const RequestIDHeader = "X-Request-ID"

// RequestID adds a unique request ID to each request, reusing the client's X-Request-ID when present.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		w.Header().Set(RequestIDHeader, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// Logger writes one access log line per request.
func Logger(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			kv := []any{
				"request_id", GetRequestID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"duration", time.Since(start),
				"ip", r.RemoteAddr,
			}
			if status >= http.StatusInternalServerError {
				logger.Error("http request", kv...)
				return
			}
			logger.Info("http request", kv...)
		})
	}
}

// Recovery recovers from panics, logs them and renders a 500 response.
func Recovery(logger *log.Logger, render ErrorRenderer) Middleware {
	if render == nil {
		render = PlainError
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Error("panic recovered",
					"request_id", GetRequestID(r.Context()),
					"method", r.Method,
					"path", r.URL.Path,
					"error", rec,
					"stack", string(debug.Stack()),
				)
				render(w, r, http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimit limits the size of request bodies to maxBytes.
func RequestSizeLimit(maxBytes int64, render ErrorRenderer) Middleware {
	if render == nil {
		render = PlainError
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				render(w, r, http.StatusRequestEntityTooLarge)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit allows requests per window for each client IP. A non-positive limit disables it.
func RateLimit(requests int, window time.Duration, render ErrorRenderer) Middleware {
	if requests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if render == nil {
		render = PlainError
	}
	return httprate.Limit(requests, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			render(w, r, http.StatusTooManyRequests)
		}),
	)
}

// CSRFConfig holds configuration for [CSRF].
type CSRFConfig struct {
	// AllowedOrigins lists extra origins (scheme://host[:port]) trusted besides the request's own host.
	AllowedOrigins []string
	Render         ErrorRenderer
}

// CSRF validates the Origin or Referer header of state-changing requests.
//
// A request passes when its origin's host equals the request host, or when the origin is allowed.
// Requests carrying neither header are rejected.
func CSRF(config CSRFConfig) Middleware {
	allowed := make(map[string]bool, len(config.AllowedOrigins))
	for _, origin := range config.AllowedOrigins {
		allowed[normalizeOrigin(origin)] = true
	}

	render := config.Render
	if render == nil {
		render = PlainError
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
				next.ServeHTTP(w, r)
				return
			}

			origin := r.Header.Get("Origin")
			if origin == "" {
				origin = extractOrigin(r.Header.Get("Referer"))
			}

			if origin == "" || !trustedOrigin(origin, r.Host, allowed) {
				render(w, r, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func trustedOrigin(origin, host string, allowed map[string]bool) bool {
	normalized := normalizeOrigin(origin)
	if allowed[normalized] {
		return true
	}

	u, err := url.Parse(normalized)
	if err != nil || u.Host == "" {
		return false
	}
	return strings.EqualFold(u.Host, host)
}

func normalizeOrigin(origin string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(origin)), "/")
}

// extractOrigin extracts the origin (scheme://host:port) from a URL.
func extractOrigin(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return parsed.Scheme + "://" + parsed.Host
}
