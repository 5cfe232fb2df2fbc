// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"aidigest/internal/models"
)

const blogColumns = `id, title, content, excerpt, category, image_url,
	       display_date, read_time, slug, meta_description, keywords, tags,
	       canonical_url, author_name, author_bio, published_at, created_at`

// BlogStore handles all blog article database operations.
type BlogStore struct {
	db *sql.DB
}

// NewBlogStore creates a new BlogStore with the given database connection.
func NewBlogStore(db *sql.DB) *BlogStore {
	return &BlogStore{db: db}
}

// List returns all blogs, newest first.
func (s *BlogStore) List(ctx context.Context) ([]models.Blog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+blogColumns+`
		FROM blogs
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	defer rows.Close()
	return scanBlogs(rows)
}

// ListByCategory returns all blogs in one category, newest first.
func (s *BlogStore) ListByCategory(ctx context.Context, category string) ([]models.Blog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+blogColumns+`
		FROM blogs
		WHERE category = $1
		ORDER BY created_at DESC
	`, category)
	if err != nil {
		return nil, fmt.Errorf("list blogs by category: %w", err)
	}
	defer rows.Close()
	return scanBlogs(rows)
}

// FindByID retrieves a blog by its UUID. Returns ErrNotFound if missing.
func (s *BlogStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	b := &models.Blog{}
	err := s.db.QueryRowContext(ctx, `
		SELECT `+blogColumns+`
		FROM blogs WHERE id = $1
	`, id).Scan(blogFields(b)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find blog by id: %w", err)
	}
	return b, nil
}

// FindBySlug retrieves a blog by its URL slug. Returns ErrNotFound if missing.
func (s *BlogStore) FindBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	b := &models.Blog{}
	err := s.db.QueryRowContext(ctx, `
		SELECT `+blogColumns+`
		FROM blogs WHERE slug = $1
	`, slug).Scan(blogFields(b)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find blog by slug: %w", err)
	}
	return b, nil
}

// Insert persists a new blog and returns it with the generated ID and
// timestamps filled in.
func (s *BlogStore) Insert(ctx context.Context, b *models.Blog) (*models.Blog, error) {
	result := &models.Blog{}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO blogs (title, content, excerpt, category, image_url,
		                   display_date, read_time, slug, meta_description,
		                   keywords, tags, canonical_url, author_name,
		                   author_bio, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING `+blogColumns+`
	`, b.Title, b.Content, b.Excerpt, b.Category, b.ImageURL,
		b.Date, b.ReadTime, b.Slug, b.MetaDescription,
		b.Keywords, b.Tags, b.CanonicalURL, b.AuthorName,
		b.AuthorBio, b.PublishedAt,
	).Scan(blogFields(result)...)
	if err != nil {
		return nil, fmt.Errorf("insert blog: %w", err)
	}
	return result, nil
}

// Delete removes a blog by ID. Returns ErrNotFound if no row matched.
func (s *BlogStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ExistsByTitle reports whether a blog with this exact title already exists
// in the category. Used to short-circuit duplicate generation requests.
func (s *BlogStore) ExistsByTitle(ctx context.Context, category, title string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM blogs WHERE category = $1 AND title = $2)
	`, category, title).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check blog title: %w", err)
	}
	return exists, nil
}

// ExistsBySlug reports whether any blog already uses the slug. Slugs carry
// a UNIQUE constraint; callers de-duplicate before inserting.
func (s *BlogStore) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM blogs WHERE slug = $1)
	`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check blog slug: %w", err)
	}
	return exists, nil
}

// Count returns the total number of blogs.
func (s *BlogStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blogs`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count blogs: %w", err)
	}
	return count, nil
}

// blogFields returns scan destinations in blogColumns order.
func blogFields(b *models.Blog) []any {
	return []any{
		&b.ID, &b.Title, &b.Content, &b.Excerpt, &b.Category, &b.ImageURL,
		&b.Date, &b.ReadTime, &b.Slug, &b.MetaDescription, &b.Keywords,
		&b.Tags, &b.CanonicalURL, &b.AuthorName, &b.AuthorBio,
		&b.PublishedAt, &b.CreatedAt,
	}
}

func scanBlogs(rows *sql.Rows) ([]models.Blog, error) {
	var items []models.Blog
	for rows.Next() {
		var b models.Blog
		if err := rows.Scan(blogFields(&b)...); err != nil {
			return nil, fmt.Errorf("scan blog: %w", err)
		}
		items = append(items, b)
	}
	return items, rows.Err()
}
