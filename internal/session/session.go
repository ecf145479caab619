// Package session provides cookie-based HTTP session management for
// the admin API. Sessions are identified by an opaque id carried in a
// secure cookie; the payload lives in a Store implementation, either
// in-process (the default) or Valkey-backed, selected at composition
// time.
package session

import (
	"context"
	"net/http"
	"time"
)

const (
	// CookieName is the name of the session cookie sent to the browser.
	CookieName = "bb_session"

	// DefaultTTL is how long a session lives before automatic expiry.
	DefaultTTL = 24 * time.Hour
)

// Data holds the session payload: the authenticated administrator's
// identity.
type Data struct {
	UserID    int       `json:"user_id"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// Store manages session lifecycle. Get returns (nil, nil) when the
// request carries no valid session; errors are reserved for backend
// faults.
type Store interface {
	// Create generates a new session, persists it, and sets the
	// session cookie on the response. Returns the session id.
	Create(ctx context.Context, w http.ResponseWriter, data *Data) (string, error)

	// Get retrieves session data using the session id from the request
	// cookie. Returns nil if no valid session exists.
	Get(ctx context.Context, r *http.Request) (*Data, error)

	// Destroy removes the session and clears the cookie.
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// setCookie writes the session cookie on the response.
func setCookie(w http.ResponseWriter, id string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
	})
}

// clearCookie expires the session cookie immediately.
func clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// cookieID extracts the session id from the request cookie.
// Returns "" when no cookie is present.
func cookieID(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
