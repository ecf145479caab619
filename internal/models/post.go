package models

import "time"

// Post is a blog article. Slug is derived from the title at creation
// (and re-derived when the title changes) and serves as the public
// identifier on read paths. Category is a name reference, not a
// foreign key; an unknown category name is tolerated.
//
// JSON field names match the public API wire format.
type Post struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Category  string    `json:"category"`
	ImageURL  *string   `json:"imageUrl"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostInput carries the fields accepted when creating a post.
// ImageURL and Published are optional; Published defaults to true
// when absent.
type PostInput struct {
	Title     string  `json:"title"`
	Excerpt   string  `json:"excerpt"`
	Content   string  `json:"content"`
	Author    string  `json:"author"`
	Category  string  `json:"category"`
	ImageURL  *string `json:"imageUrl"`
	Published *bool   `json:"published"`
}

// PostPatch carries a partial update. Nil fields are left unchanged.
type PostPatch struct {
	Title     *string `json:"title"`
	Excerpt   *string `json:"excerpt"`
	Content   *string `json:"content"`
	Author    *string `json:"author"`
	Category  *string `json:"category"`
	ImageURL  *string `json:"imageUrl"`
	Published *bool   `json:"published"`
}
