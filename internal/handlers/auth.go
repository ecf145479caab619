package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ELGOUMRIYASSINE/BlogBuddy2/internal/middleware"
	"github.com/ELGOUMRIYASSINE/BlogBuddy2/internal/session"
	"github.com/ELGOUMRIYASSINE/BlogBuddy2/internal/store"
)

// Auth groups the authentication HTTP handlers.
type Auth struct {
	sessions session.Store
	store    store.Storage
}

// NewAuth creates a new Auth handler group.
func NewAuth(sessions session.Store, storage store.Storage) *Auth {
	return &Auth{
		sessions: sessions,
		store:    storage,
	}
}

// loginRequest is the login payload.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks the submitted credentials against the stored admin
// user (plain equality) and establishes a session on success.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Username and password required")
		return
	}

	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Username and password required")
		return
	}

	user, err := a.store.GetUserByUsername(req.Username)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if user == nil || user.Password != req.Password {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if _, err := a.sessions.Create(r.Context(), w, &session.Data{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  true,
	}); err != nil {
		slog.Error("session create failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user": map[string]any{
			"id":       user.ID,
			"username": user.Username,
		},
	})
}

// Logout destroys the session. A session-store failure here is
// surfaced as a generic error rather than swallowed.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Error("session destroy failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Could not log out")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Me reports whether the request carries an authenticated admin
// session.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil || !sess.IsAdmin {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"isAuthenticated": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"isAuthenticated": true,
		"userId":          sess.UserID,
	})
}
