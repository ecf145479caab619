// Package store provides the authoritative state for users, posts, and
// categories. All reads and writes go through a Storage implementation;
// the in-memory variant is the default, with a PostgreSQL variant
// selectable at composition time.
package store

import (
	"errors"

	"github.com/ELGOUMRIYASSINE/BlogBuddy2/internal/models"
)

// DefaultPopularLimit is the number of posts returned by
// GetPopularPosts when the caller does not specify a limit.
const DefaultPopularLimit = 3

// ErrUsernameTaken is returned by CreateUser when the username is
// already in use.
var ErrUsernameTaken = errors.New("username already taken")

// Storage is the operation set every backing store must provide.
//
// Absent records are signaled as nil (or false for DeletePost) with a
// nil error; errors are reserved for backend faults. Identifiers are
// assigned sequentially per entity kind and never reused within a
// process lifetime.
type Storage interface {
	// Users
	GetUser(id int) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	CreateUser(username, password string) (*models.User, error)

	// Posts, ordered newest first (created_at descending, ties broken
	// by insertion order).
	GetAllPosts() ([]models.Post, error)
	GetPostByID(id int) (*models.Post, error)
	GetPostBySlug(slug string) (*models.Post, error)
	GetPostsByCategory(category string) ([]models.Post, error)
	SearchPosts(query string) ([]models.Post, error)
	GetPopularPosts(limit int) ([]models.Post, error)
	CreatePost(input models.PostInput) (*models.Post, error)
	UpdatePost(id int, patch models.PostPatch) (*models.Post, error)
	DeletePost(id int) (bool, error)

	// Categories
	GetAllCategories() ([]models.Category, error)
	CreateCategory(name string) (*models.Category, error)
	UpdateCategoryPostCount(name string, delta int) error
}
