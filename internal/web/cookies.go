package web

import (
	"encoding/base64"
	"net/http"
	"strings"
	"time"
)

const (
	// Cookie names
	SessionCookie = "watchlist_session"
	FlashCookie   = "watchlist_flash"
)

// CookieConfig holds the attributes shared by every cookie the app sets.
type CookieConfig struct {
	Path     string
	Secure   bool
	SameSite http.SameSite
}

// CookieHelper manages the session and flash cookies.
type CookieHelper struct {
	config CookieConfig
}

// NewCookieHelper creates a new cookie helper with the given configuration.
func NewCookieHelper(config CookieConfig) *CookieHelper {
	if config.Path == "" {
		config.Path = "/"
	}
	if config.SameSite == 0 {
		config.SameSite = http.SameSiteLaxMode
	}
	return &CookieHelper{config: config}
}

// SetSession stores the session token for ttl.
func (h *CookieHelper) SetSession(w http.ResponseWriter, token string, ttl time.Duration) {
	h.setCookie(w, SessionCookie, token, int(ttl.Seconds()))
}

// ClearSession removes the session cookie.
func (h *CookieHelper) ClearSession(w http.ResponseWriter) {
	h.setCookie(w, SessionCookie, "", -1)
}

// SessionToken retrieves the session token from the request, or "" when absent.
func (h *CookieHelper) SessionToken(r *http.Request) string {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

// Flash queues msg for display on the next rendered page.
//
// Messages still pending on r are kept, so a flash set before a redirect chain survives it.
func (h *CookieHelper) Flash(w http.ResponseWriter, r *http.Request, msg string) {
	msgs := append(h.pending(r), msg)
	h.setCookie(w, FlashCookie, encodeFlashes(msgs), 0)
}

// Flashes returns the pending messages without clearing them.
func (h *CookieHelper) Flashes(r *http.Request) []string {
	return h.pending(r)
}

// ClearFlashes expires the flash cookie once its messages have been shown.
func (h *CookieHelper) ClearFlashes(w http.ResponseWriter) {
	h.setCookie(w, FlashCookie, "", -1)
}

func (h *CookieHelper) pending(r *http.Request) []string {
	c, err := r.Cookie(FlashCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	return decodeFlashes(c.Value)
}

func (h *CookieHelper) setCookie(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     h.config.Path,
		MaxAge:   maxAge,
		Secure:   h.config.Secure,
		HttpOnly: true,
		SameSite: h.config.SameSite,
	})
}

// Flash messages contain quotes and spaces, which are not valid in cookie values.
func encodeFlashes(msgs []string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strings.Join(msgs, "\n")))
}

func decodeFlashes(value string) []string {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil || len(raw) == 0 {
		return nil
	}
	return strings.Split(string(raw), "\n")
}
