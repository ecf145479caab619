package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ELGOUMRIYASSINE/BlogBuddy2/internal/models"
)

func TestListPosts_All(t *testing.T) {
	env := newTestEnv(t)
	createPost(t, env, "Newest Post")

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	rec := httptest.NewRecorder()
	env.Public.ListPosts(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var posts []models.Post
	decodeBody(t, rec.Body.Bytes(), &posts)
	if len(posts) != 5 {
		t.Fatalf("len(posts) = %d, want 5", len(posts))
	}
	if posts[0].Title != "Newest Post" {
		t.Errorf("posts[0].Title = %q, want the newest post first", posts[0].Title)
	}
}

func TestListPosts_CategoryFilter(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/posts?category=technology", nil)
	rec := httptest.NewRecorder()
	env.Public.ListPosts(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var posts []models.Post
	decodeBody(t, rec.Body.Bytes(), &posts)
	if len(posts) != 1 {
		t.Fatalf("len(posts) = %d, want 1", len(posts))
	}
	if posts[0].Category != "Technology" {
		t.Errorf("Category = %q, want Technology", posts[0].Category)
	}
}

func TestListPosts_SearchBeatsCategory(t *testing.T) {
	env := newTestEnv(t)

	// Both parameters present: search wins, category is ignored.
	req := httptest.NewRequest(http.MethodGet, "/api/posts?search=editorial&category=technology", nil)
	rec := httptest.NewRecorder()
	env.Public.ListPosts(rec, req)

	var posts []models.Post
	decodeBody(t, rec.Body.Bytes(), &posts)
	if len(posts) != 1 {
		t.Fatalf("len(posts) = %d, want 1", len(posts))
	}
	if !strings.Contains(strings.ToLower(posts[0].Title), "editorial") {
		t.Errorf("unexpected match %q", posts[0].Title)
	}
}

func TestListPosts_NoMatchesIsEmptyArray(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/posts?search=xyzzy", nil)
	rec := httptest.NewRecorder()
	env.Public.ListPosts(rec, req)

	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %q, want []", got)
	}
}

func TestPopularPosts(t *testing.T) {
	env := newTestEnv(t)

	t.Run("DefaultLimit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/posts/popular", nil)
		rec := httptest.NewRecorder()
		env.Public.PopularPosts(rec, req)

		var posts []models.Post
		decodeBody(t, rec.Body.Bytes(), &posts)
		if len(posts) != 3 {
			t.Errorf("len(posts) = %d, want 3", len(posts))
		}
	})

	t.Run("ExplicitLimit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/posts/popular?limit=2", nil)
		rec := httptest.NewRecorder()
		env.Public.PopularPosts(rec, req)

		var posts []models.Post
		decodeBody(t, rec.Body.Bytes(), &posts)
		if len(posts) != 2 {
			t.Errorf("len(posts) = %d, want 2", len(posts))
		}
	})

	t.Run("GarbageLimitFallsBack", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/posts/popular?limit=abc", nil)
		rec := httptest.NewRecorder()
		env.Public.PopularPosts(rec, req)

		var posts []models.Post
		decodeBody(t, rec.Body.Bytes(), &posts)
		if len(posts) != 3 {
			t.Errorf("len(posts) = %d, want 3", len(posts))
		}
	})
}

func TestPostBySlug(t *testing.T) {
	env := newTestEnv(t)
	created := createPost(t, env, "A Post To Fetch")

	t.Run("Found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/posts/"+created.Slug, nil)
		req = withChiURLParam(req, "slug", created.Slug)
		rec := httptest.NewRecorder()
		env.Public.PostBySlug(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		var post models.Post
		decodeBody(t, rec.Body.Bytes(), &post)
		if post.ID != created.ID || post.Title != "A Post To Fetch" {
			t.Errorf("post = %+v", post)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/posts/no-such-slug", nil)
		req = withChiURLParam(req, "slug", "no-such-slug")
		rec := httptest.NewRecorder()
		env.Public.PostBySlug(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
		var resp map[string]string
		decodeBody(t, rec.Body.Bytes(), &resp)
		if resp["message"] != "Post not found" {
			t.Errorf("message = %q", resp["message"])
		}
	})
}

func TestListCategories(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	rec := httptest.NewRecorder()
	env.Public.ListCategories(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var categories []models.Category
	decodeBody(t, rec.Body.Bytes(), &categories)
	if len(categories) != 4 {
		t.Fatalf("len(categories) = %d, want 4", len(categories))
	}

	total := 0
	for _, c := range categories {
		total += c.PostCount
	}
	if total != 4 {
		t.Errorf("summed post counts = %d, want 4 seeded posts", total)
	}
}
