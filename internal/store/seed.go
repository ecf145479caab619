package store

import (
	"fmt"
	"log/slog"

	"github.com/ELGOUMRIYASSINE/BlogBuddy2/internal/models"
)

// defaultCategories is the fixed category set created at first start.
var defaultCategories = []string{"Technology", "Lifestyle", "Design", "Business"}

// samplePosts is the fixed content set created at first start so the
// public read paths have something to serve. Seeded oldest first, so
// the last entry is the newest post.
var samplePosts = []models.PostInput{
	{
		Title:    "Getting Started With a Minimal Writing Habit",
		Excerpt:  "Small daily sessions beat heroic weekend sprints.",
		Content:  "A sustainable writing habit starts with a session short enough that skipping it feels sillier than doing it. Ten minutes a day compounds into a back catalog faster than most people expect.",
		Author:   "Admin",
		Category: "Lifestyle",
	},
	{
		Title:    "Why Your Blog Needs an Editorial Design Pass",
		Excerpt:  "Typography and spacing do more for readability than any plugin.",
		Content:  "Good editorial design is invisible: a comfortable measure, generous line height, and a type scale that keeps headings in proportion. Before reaching for another widget, spend an afternoon on the basics.",
		Author:   "Admin",
		Category: "Design",
	},
	{
		Title:    "Self-Hosting a Blog in 2025",
		Excerpt:  "What it actually takes to run your own publishing stack.",
		Content:  "Between managed platforms and static site generators there is a middle path: a small server process you understand end to end. This post walks through the trade-offs of owning your stack.",
		Author:   "Admin",
		Category: "Technology",
	},
	{
		Title:    "Turning a Side Project Into a Product",
		Excerpt:  "Lessons from shipping something people pay for.",
		Content:  "The gap between a working prototype and a product is mostly unglamorous: billing, support, and the discipline to say no to features. Here is what that transition looked like for us.",
		Author:   "Admin",
		Category: "Business",
	},
}

// Seed populates the store with the fixed admin user, the default
// category set, and the sample posts. It is a no-op if the admin user
// already exists, so it is safe against a persistent backend.
func Seed(s Storage, adminUsername, adminPassword string) error {
	existing, err := s.GetUserByUsername(adminUsername)
	if err != nil {
		return fmt.Errorf("seed: check admin: %w", err)
	}
	if existing != nil {
		slog.Info("store already seeded, skipping")
		return nil
	}

	if _, err := s.CreateUser(adminUsername, adminPassword); err != nil {
		return fmt.Errorf("seed: create admin: %w", err)
	}

	for _, name := range defaultCategories {
		if _, err := s.CreateCategory(name); err != nil {
			return fmt.Errorf("seed: create category %q: %w", name, err)
		}
	}

	for _, input := range samplePosts {
		if _, err := s.CreatePost(input); err != nil {
			return fmt.Errorf("seed: create post %q: %w", input.Title, err)
		}
	}

	slog.Info("store seeded",
		"admin", adminUsername,
		"categories", len(defaultCategories),
		"posts", len(samplePosts),
	)
	return nil
}
