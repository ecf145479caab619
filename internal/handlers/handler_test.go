// handler_test.go provides shared test infrastructure for handler
// tests. Everything runs against the in-memory stores, so no external
// services are required.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ELGOUMRIYASSINE/BlogBuddy2/internal/middleware"
	"github.com/ELGOUMRIYASSINE/BlogBuddy2/internal/models"
	"github.com/ELGOUMRIYASSINE/BlogBuddy2/internal/session"
	"github.com/ELGOUMRIYASSINE/BlogBuddy2/internal/store"
)

// testEnv holds all handler dependencies.
type testEnv struct {
	Store    *store.MemoryStore
	Sessions *session.MemoryStore
	Auth     *Auth
	Public   *Public
	Admin    *Admin
}

// newTestEnv creates a handler test environment with a seeded
// in-memory store.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st := store.NewMemoryStore()
	if err := store.Seed(st, "admin", "admin123"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	sessions := session.NewMemoryStore(false)

	return &testEnv{
		Store:    st,
		Sessions: sessions,
		Auth:     NewAuth(sessions, st),
		Public:   NewPublic(st),
		Admin:    NewAdmin(st),
	}
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// decodeBody unmarshals a JSON response body into v.
func decodeBody(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("decode response %q: %v", body, err)
	}
}

// createPost inserts a post directly through the store.
func createPost(t *testing.T, env *testEnv, title string) models.Post {
	t.Helper()
	post, err := env.Store.CreatePost(models.PostInput{
		Title:    title,
		Excerpt:  "An excerpt",
		Content:  "Some content",
		Author:   "Test Author",
		Category: "Technology",
	})
	if err != nil {
		t.Fatalf("CreatePost(%q): %v", title, err)
	}
	return *post
}
