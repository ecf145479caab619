package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ELGOUMRIYASSINE/BlogBuddy2/internal/models"
	"github.com/ELGOUMRIYASSINE/BlogBuddy2/internal/slug"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint
// violations.
const pgUniqueViolation = "23505"

// PostgresStore is the database-backed Storage implementation, for
// deployments that want state to survive restarts. It satisfies the
// same contract as MemoryStore; multi-row mutations run in a
// transaction so a post write and its category count bump are observed
// as one unit.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgresStore with the given connection pool.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const postColumns = `id, title, slug, excerpt, content, author, category, image_url, published, created_at, updated_at`

// scanPost scans a row into a Post struct.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content,
		&p.Author, &p.Category, &p.ImageURL, &p.Published,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// --- Users ---

// GetUser retrieves a user by id. Returns nil if not found.
func (s *PostgresStore) GetUser(id int) (*models.User, error) {
	u := &models.User{}
	err := s.db.QueryRow(`
		SELECT id, username, password FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.Username, &u.Password)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetUserByUsername retrieves a user by exact username match.
// Returns nil if not found.
func (s *PostgresStore) GetUserByUsername(username string) (*models.User, error) {
	u := &models.User{}
	err := s.db.QueryRow(`
		SELECT id, username, password FROM users WHERE username = $1
	`, username).Scan(&u.ID, &u.Username, &u.Password)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return u, nil
}

// CreateUser inserts a new user. Duplicate usernames are rejected with
// ErrUsernameTaken via the unique constraint.
func (s *PostgresStore) CreateUser(username, password string) (*models.User, error) {
	u := &models.User{}
	err := s.db.QueryRow(`
		INSERT INTO users (username, password)
		VALUES ($1, $2)
		RETURNING id, username, password
	`, username, password).Scan(&u.ID, &u.Username, &u.Password)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("create user %q: %w", username, ErrUsernameTaken)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// --- Posts ---

// GetAllPosts returns every post, newest first. Ties on created_at are
// broken by ascending id (insertion order).
func (s *PostgresStore) GetAllPosts() ([]models.Post, error) {
	return s.queryPosts(`
		SELECT `+postColumns+` FROM posts
		ORDER BY created_at DESC, id ASC
	`)
}

// GetPostByID retrieves a post by id. Returns nil if not found.
func (s *PostgresStore) GetPostByID(id int) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get post by id: %w", err)
	}
	return p, nil
}

// GetPostBySlug retrieves a post by exact slug match. Returns nil if
// not found.
func (s *PostgresStore) GetPostBySlug(postSlug string) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = $1`, postSlug)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get post by slug: %w", err)
	}
	return p, nil
}

// GetPostsByCategory returns posts matching the category name
// case-insensitively, newest first.
func (s *PostgresStore) GetPostsByCategory(category string) ([]models.Post, error) {
	return s.queryPosts(`
		SELECT `+postColumns+` FROM posts
		WHERE LOWER(category) = LOWER($1)
		ORDER BY created_at DESC, id ASC
	`, category)
}

// SearchPosts returns posts whose title, excerpt, or content contains
// the query case-insensitively, newest first. strpos keeps the match a
// plain substring test, free of LIKE pattern metacharacters.
func (s *PostgresStore) SearchPosts(query string) ([]models.Post, error) {
	return s.queryPosts(`
		SELECT `+postColumns+` FROM posts
		WHERE strpos(LOWER(title), LOWER($1)) > 0
		   OR strpos(LOWER(excerpt), LOWER($1)) > 0
		   OR strpos(LOWER(content), LOWER($1)) > 0
		ORDER BY created_at DESC, id ASC
	`, query)
}

// GetPopularPosts returns the limit most recent posts. A limit of zero
// or less falls back to DefaultPopularLimit.
func (s *PostgresStore) GetPopularPosts(limit int) ([]models.Post, error) {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	return s.queryPosts(`
		SELECT `+postColumns+` FROM posts
		ORDER BY created_at DESC, id ASC
		LIMIT $1
	`, limit)
}

// CreatePost inserts a new post with a derived, disambiguated slug and
// bumps the referenced category's post count in the same transaction.
func (s *PostgresStore) CreatePost(input models.PostInput) (*models.Post, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("create post: begin tx: %w", err)
	}
	defer tx.Rollback()

	postSlug, err := uniqueSlugTx(tx, slug.Generate(input.Title), 0)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	published := true
	if input.Published != nil {
		published = *input.Published
	}

	row := tx.QueryRow(`
		INSERT INTO posts (title, slug, excerpt, content, author, category, image_url, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+postColumns,
		input.Title, postSlug, input.Excerpt, input.Content,
		input.Author, input.Category, input.ImageURL, published,
	)
	p, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if err := bumpCategoryCountTx(tx, p.Category, 1); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create post: commit: %w", err)
	}
	return p, nil
}

// UpdatePost merges the patch onto the existing post. A title change
// re-derives the slug; a category change moves the post count from the
// old category to the new one. Returns nil if the id is unknown.
func (s *PostgresStore) UpdatePost(id int, patch models.PostPatch) (*models.Post, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("update post: begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = $1 FOR UPDATE`, id)
	existing, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	oldCategory := existing.Category

	if patch.Title != nil {
		existing.Title = *patch.Title
		existing.Slug, err = uniqueSlugTx(tx, slug.Generate(existing.Title), id)
		if err != nil {
			return nil, fmt.Errorf("update post: %w", err)
		}
	}
	if patch.Excerpt != nil {
		existing.Excerpt = *patch.Excerpt
	}
	if patch.Content != nil {
		existing.Content = *patch.Content
	}
	if patch.Author != nil {
		existing.Author = *patch.Author
	}
	if patch.Category != nil {
		existing.Category = *patch.Category
	}
	if patch.ImageURL != nil {
		existing.ImageURL = patch.ImageURL
	}
	if patch.Published != nil {
		existing.Published = *patch.Published
	}

	row = tx.QueryRow(`
		UPDATE posts SET
			title = $1, slug = $2, excerpt = $3, content = $4,
			author = $5, category = $6, image_url = $7, published = $8,
			updated_at = NOW()
		WHERE id = $9
		RETURNING `+postColumns,
		existing.Title, existing.Slug, existing.Excerpt, existing.Content,
		existing.Author, existing.Category, existing.ImageURL, existing.Published, id,
	)
	updated, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	// Keep the denormalized counts in sync when the post moves category.
	if !strings.EqualFold(oldCategory, updated.Category) {
		if err := bumpCategoryCountTx(tx, oldCategory, -1); err != nil {
			return nil, fmt.Errorf("update post: %w", err)
		}
		if err := bumpCategoryCountTx(tx, updated.Category, 1); err != nil {
			return nil, fmt.Errorf("update post: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("update post: commit: %w", err)
	}
	return updated, nil
}

// DeletePost removes the post and decrements its category's count.
// Returns false if the id is unknown.
func (s *PostgresStore) DeletePost(id int) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("delete post: begin tx: %w", err)
	}
	defer tx.Rollback()

	var category string
	err = tx.QueryRow(`SELECT category FROM posts WHERE id = $1 FOR UPDATE`, id).Scan(&category)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete post: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM posts WHERE id = $1`, id); err != nil {
		return false, fmt.Errorf("delete post: %w", err)
	}
	if err := bumpCategoryCountTx(tx, category, -1); err != nil {
		return false, fmt.Errorf("delete post: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("delete post: commit: %w", err)
	}
	return true, nil
}

// --- Categories ---

// GetAllCategories returns all categories in creation order.
func (s *PostgresStore) GetAllCategories() ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT id, name, post_count FROM categories ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.PostCount); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// CreateCategory inserts a new category with a zero post count.
func (s *PostgresStore) CreateCategory(name string) (*models.Category, error) {
	c := &models.Category{}
	err := s.db.QueryRow(`
		INSERT INTO categories (name) VALUES ($1)
		RETURNING id, name, post_count
	`, name).Scan(&c.ID, &c.Name, &c.PostCount)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

// UpdateCategoryPostCount adjusts the named category's post count by
// delta, flooring at zero. Unknown names are a silent no-op.
func (s *PostgresStore) UpdateCategoryPostCount(name string, delta int) error {
	_, err := s.db.Exec(`
		UPDATE categories SET post_count = GREATEST(0, post_count + $2)
		WHERE LOWER(name) = LOWER($1)
	`, name, delta)
	if err != nil {
		return fmt.Errorf("update category post count: %w", err)
	}
	return nil
}

// --- internals ---

// queryPosts runs a multi-row post query and scans the results.
func (s *PostgresStore) queryPosts(query string, args ...any) ([]models.Post, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	var items []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content,
			&p.Author, &p.Category, &p.ImageURL, &p.Published,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// uniqueSlugTx disambiguates base with a numeric suffix until no other
// post (excluding excludeID) holds the candidate slug.
func uniqueSlugTx(tx *sql.Tx, base string, excludeID int) (string, error) {
	for n := 1; ; n++ {
		candidate := slug.WithSuffix(base, n)
		var taken bool
		err := tx.QueryRow(`
			SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1 AND id <> $2)
		`, candidate, excludeID).Scan(&taken)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
	}
}

// bumpCategoryCountTx applies the count delta with a zero floor inside
// an open transaction.
func bumpCategoryCountTx(tx *sql.Tx, name string, delta int) error {
	_, err := tx.Exec(`
		UPDATE categories SET post_count = GREATEST(0, post_count + $2)
		WHERE LOWER(name) = LOWER($1)
	`, name, delta)
	if err != nil {
		return fmt.Errorf("bump category count: %w", err)
	}
	return nil
}
