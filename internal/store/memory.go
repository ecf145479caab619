package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ELGOUMRIYASSINE/BlogBuddy2/internal/models"
	"github.com/ELGOUMRIYASSINE/BlogBuddy2/internal/slug"
)

// MemoryStore is the default Storage implementation: three in-process
// collections with sequential id counters. All state is volatile and
// reseeded at startup.
//
// A single coarse mutex serializes every operation, since mutations
// touch multiple fields together (post creation plus the category
// count bump must be observed as one unit).
type MemoryStore struct {
	mu sync.Mutex

	users      map[int]*models.User
	posts      map[int]*models.Post
	categories map[int]*models.Category

	nextUserID     int
	nextPostID     int
	nextCategoryID int
}

// NewMemoryStore returns an empty MemoryStore. Callers typically seed
// it with Seed() at startup.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:          make(map[int]*models.User),
		posts:          make(map[int]*models.Post),
		categories:     make(map[int]*models.Category),
		nextUserID:     1,
		nextPostID:     1,
		nextCategoryID: 1,
	}
}

// --- Users ---

// GetUser retrieves a user by id. Returns nil if not found.
func (s *MemoryStore) GetUser(id int) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

// GetUserByUsername retrieves a user by exact, case-sensitive username
// match. Returns nil if not found.
func (s *MemoryStore) GetUserByUsername(username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range sortedKeys(s.users) {
		if s.users[id].Username == username {
			copied := *s.users[id]
			return &copied, nil
		}
	}
	return nil, nil
}

// CreateUser assigns the next user id and stores the new user.
// Duplicate usernames are rejected with ErrUsernameTaken so that
// username lookup stays unambiguous.
func (s *MemoryStore) CreateUser(username, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return nil, fmt.Errorf("create user %q: %w", username, ErrUsernameTaken)
		}
	}

	u := &models.User{
		ID:       s.nextUserID,
		Username: username,
		Password: password,
	}
	s.nextUserID++
	s.users[u.ID] = u

	copied := *u
	return &copied, nil
}

// --- Posts ---

// GetAllPosts returns every post ordered by creation time descending.
// Ties are broken by insertion order.
func (s *MemoryStore) GetAllPosts() ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sortedPostsLocked(nil), nil
}

// GetPostByID retrieves a post by id. Returns nil if not found.
func (s *MemoryStore) GetPostByID(id int) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

// GetPostBySlug retrieves a post by exact slug match. Returns nil if
// not found. Slugs are kept unique at write time, so at most one post
// can match.
func (s *MemoryStore) GetPostBySlug(slug string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range sortedKeys(s.posts) {
		if s.posts[id].Slug == slug {
			copied := *s.posts[id]
			return &copied, nil
		}
	}
	return nil, nil
}

// GetPostsByCategory returns posts whose category matches the given
// name case-insensitively, newest first.
func (s *MemoryStore) GetPostsByCategory(category string) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sortedPostsLocked(func(p *models.Post) bool {
		return strings.EqualFold(p.Category, category)
	}), nil
}

// SearchPosts returns posts whose title, excerpt, or content contains
// the query case-insensitively, newest first.
func (s *MemoryStore) SearchPosts(query string) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(query)
	return s.sortedPostsLocked(func(p *models.Post) bool {
		return strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Excerpt), q) ||
			strings.Contains(strings.ToLower(p.Content), q)
	}), nil
}

// GetPopularPosts returns the limit most recent posts. A limit of zero
// or less falls back to DefaultPopularLimit. Recency stands in for a
// real popularity metric.
func (s *MemoryStore) GetPopularPosts(limit int) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	all := s.sortedPostsLocked(nil)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// CreatePost assigns the next post id, derives the slug from the
// title, stamps matching creation and update times, and bumps the
// referenced category's post count.
func (s *MemoryStore) CreatePost(input models.PostInput) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	published := true
	if input.Published != nil {
		published = *input.Published
	}

	now := time.Now()
	p := &models.Post{
		ID:        s.nextPostID,
		Title:     input.Title,
		Slug:      s.uniqueSlugLocked(slug.Generate(input.Title), 0),
		Excerpt:   input.Excerpt,
		Content:   input.Content,
		Author:    input.Author,
		Category:  input.Category,
		ImageURL:  input.ImageURL,
		Published: published,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextPostID++
	s.posts[p.ID] = p
	s.bumpCategoryCountLocked(p.Category, 1)

	copied := *p
	return &copied, nil
}

// UpdatePost merges the patch onto the existing post. A title change
// re-derives the slug; a category change moves the post count from the
// old category to the new one. Returns nil if the id is unknown.
func (s *MemoryStore) UpdatePost(id int, patch models.PostPatch) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, nil
	}

	if patch.Title != nil {
		p.Title = *patch.Title
		p.Slug = s.uniqueSlugLocked(slug.Generate(p.Title), id)
	}
	if patch.Excerpt != nil {
		p.Excerpt = *patch.Excerpt
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Author != nil {
		p.Author = *patch.Author
	}
	if patch.Category != nil {
		if !strings.EqualFold(p.Category, *patch.Category) {
			s.bumpCategoryCountLocked(p.Category, -1)
			s.bumpCategoryCountLocked(*patch.Category, 1)
		}
		p.Category = *patch.Category
	}
	if patch.ImageURL != nil {
		p.ImageURL = patch.ImageURL
	}
	if patch.Published != nil {
		p.Published = *patch.Published
	}
	p.UpdatedAt = time.Now()

	copied := *p
	return &copied, nil
}

// DeletePost removes the post and decrements its category's count.
// Returns false if the id is unknown.
func (s *MemoryStore) DeletePost(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return false, nil
	}

	delete(s.posts, id)
	s.bumpCategoryCountLocked(p.Category, -1)
	return true, nil
}

// --- Categories ---

// GetAllCategories returns all categories in creation order.
func (s *MemoryStore) GetAllCategories() ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []models.Category
	for _, id := range sortedKeys(s.categories) {
		items = append(items, *s.categories[id])
	}
	return items, nil
}

// CreateCategory assigns the next category id and stores the category
// with a zero post count.
func (s *MemoryStore) CreateCategory(name string) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := &models.Category{
		ID:        s.nextCategoryID,
		Name:      name,
		PostCount: 0,
	}
	s.nextCategoryID++
	s.categories[c.ID] = c

	copied := *c
	return &copied, nil
}

// UpdateCategoryPostCount adjusts the named category's post count by
// delta, flooring at zero. The name match is case-insensitive; an
// unknown name is a silent no-op.
func (s *MemoryStore) UpdateCategoryPostCount(name string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bumpCategoryCountLocked(name, delta)
	return nil
}

// --- internals (caller must hold s.mu) ---

// sortedPostsLocked returns value copies of posts matching the filter
// (nil filter matches everything), ordered by creation time descending
// with insertion order breaking ties. Ascending ids reflect insertion
// order, so a stable sort over the id-ordered slice preserves it.
func (s *MemoryStore) sortedPostsLocked(match func(*models.Post) bool) []models.Post {
	var items []models.Post
	for _, id := range sortedKeys(s.posts) {
		p := s.posts[id]
		if match == nil || match(p) {
			items = append(items, *p)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items
}

// uniqueSlugLocked disambiguates base with a numeric suffix until no
// other post (excluding excludeID) holds the candidate slug.
func (s *MemoryStore) uniqueSlugLocked(base string, excludeID int) string {
	for n := 1; ; n++ {
		candidate := slug.WithSuffix(base, n)
		taken := false
		for id, p := range s.posts {
			if id != excludeID && p.Slug == candidate {
				taken = true
				break
			}
		}
		if !taken {
			return candidate
		}
	}
}

// bumpCategoryCountLocked applies the count delta with a zero floor.
func (s *MemoryStore) bumpCategoryCountLocked(name string, delta int) {
	for _, id := range sortedKeys(s.categories) {
		c := s.categories[id]
		if strings.EqualFold(c.Name, name) {
			c.PostCount = max(0, c.PostCount+delta)
			return
		}
	}
}

// sortedKeys returns map keys in ascending order.
func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
