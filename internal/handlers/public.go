package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ELGOUMRIYASSINE/BlogBuddy2/internal/models"
	"github.com/ELGOUMRIYASSINE/BlogBuddy2/internal/store"
)

// Public groups the unauthenticated read handlers.
type Public struct {
	store store.Storage
}

// NewPublic creates a new Public handler group.
func NewPublic(storage store.Storage) *Public {
	return &Public{store: storage}
}

// ListPosts returns posts newest first. A search query takes
// precedence over a category filter; with neither, all posts are
// returned.
func (p *Public) ListPosts(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	category := r.URL.Query().Get("category")

	var (
		posts []models.Post
		err   error
	)
	switch {
	case search != "":
		posts, err = p.store.SearchPosts(search)
	case category != "":
		posts, err = p.store.GetPostsByCategory(category)
	default:
		posts, err = p.store.GetAllPosts()
	}
	if err != nil {
		slog.Error("list posts failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch posts")
		return
	}

	writeJSON(w, http.StatusOK, nonNil(posts))
}

// PopularPosts returns the most recent posts, default three.
func (p *Public) PopularPosts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	posts, err := p.store.GetPopularPosts(limit)
	if err != nil {
		slog.Error("popular posts failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch posts")
		return
	}

	writeJSON(w, http.StatusOK, nonNil(posts))
}

// PostBySlug returns a single post by its public identifier.
func (p *Public) PostBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := p.store.GetPostBySlug(slug)
	if err != nil {
		slog.Error("get post by slug failed", "error", err, "slug", slug)
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch post")
		return
	}
	if post == nil {
		writeMessage(w, http.StatusNotFound, "Post not found")
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// ListCategories returns all categories with their post counts.
func (p *Public) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := p.store.GetAllCategories()
	if err != nil {
		slog.Error("list categories failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}

	if categories == nil {
		categories = []models.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

// nonNil keeps empty result sets serializing as [] instead of null.
func nonNil(posts []models.Post) []models.Post {
	if posts == nil {
		return []models.Post{}
	}
	return posts
}
