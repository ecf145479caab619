package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ELGOUMRIYASSINE/BlogBuddy2/internal/models"
	"github.com/ELGOUMRIYASSINE/BlogBuddy2/internal/store"
)

// Admin groups the session-gated post mutation handlers. The router
// applies the authentication guard before any of these run.
type Admin struct {
	store store.Storage
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(storage store.Storage) *Admin {
	return &Admin{store: storage}
}

// CreatePost validates the payload and stores a new post.
func (a *Admin) CreatePost(w http.ResponseWriter, r *http.Request) {
	var input models.PostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeValidationErrors(w, map[string]string{"body": "malformed JSON payload"})
		return
	}

	if errs := validatePostInput(input); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	post, err := a.store.CreatePost(input)
	if err != nil {
		slog.Error("create post failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to create post")
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

// UpdatePost validates the partial payload and merges it onto the
// existing post.
func (a *Admin) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Post not found")
		return
	}

	var patch models.PostPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeValidationErrors(w, map[string]string{"body": "malformed JSON payload"})
		return
	}

	if errs := validatePostPatch(patch); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	post, err := a.store.UpdatePost(id, patch)
	if err != nil {
		slog.Error("update post failed", "error", err, "id", id)
		writeMessage(w, http.StatusInternalServerError, "Failed to update post")
		return
	}
	if post == nil {
		writeMessage(w, http.StatusNotFound, "Post not found")
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// DeletePost removes a post by id.
func (a *Admin) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Post not found")
		return
	}

	deleted, err := a.store.DeletePost(id)
	if err != nil {
		slog.Error("delete post failed", "error", err, "id", id)
		writeMessage(w, http.StatusInternalServerError, "Failed to delete post")
		return
	}
	if !deleted {
		writeMessage(w, http.StatusNotFound, "Post not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
