// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"aidigest/internal/models"
)

// PageStore manages editable page-content blobs keyed by page name.
type PageStore struct {
	db *sql.DB
}

// NewPageStore creates a new PageStore with the given database connection.
func NewPageStore(db *sql.DB) *PageStore {
	return &PageStore{db: db}
}

// Get returns the content blob for a page key. Returns ErrNotFound if the
// page has never been saved.
func (s *PageStore) Get(ctx context.Context, key string) (*models.PageContent, error) {
	p := &models.PageContent{}
	err := s.db.QueryRowContext(ctx, `
		SELECT key, content, updated_at
		FROM page_contents WHERE key = $1
	`, key).Scan(&p.Key, &p.Content, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get page content: %w", err)
	}
	return p, nil
}

// Set upserts the content blob for a page key. The whole blob is replaced.
func (s *PageStore) Set(ctx context.Context, key, content string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO page_contents (key, content, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET content = EXCLUDED.content, updated_at = NOW()
	`, key, content)
	if err != nil {
		return fmt.Errorf("set page content: %w", err)
	}
	return nil
}
