// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"aidigest/internal/models"
)

// GenerationLogStore records audit entries for generation runs.
type GenerationLogStore struct {
	db *sql.DB
}

// NewGenerationLogStore creates a new GenerationLogStore with the given
// database connection.
func NewGenerationLogStore(db *sql.DB) *GenerationLogStore {
	return &GenerationLogStore{db: db}
}

// Begin inserts a pending entry for a run covering the given categories and
// returns its ID.
func (s *GenerationLogStore) Begin(ctx context.Context, categories []string) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO content_generation_logs (status, categories)
		VALUES ($1, $2)
		RETURNING id
	`, models.GenerationPending, encodeList(categories)).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin generation log: %w", err)
	}
	return id, nil
}

// Finish updates a pending entry with the run outcome.
func (s *GenerationLogStore) Finish(ctx context.Context, id uuid.UUID, status models.GenerationStatus, blogID *uuid.UUID, errMsg string) error {
	var msg *string
	if errMsg != "" {
		msg = &errMsg
	}
	_, err := s.db.ExecContext(ctx, `
		UPDATE content_generation_logs SET
			status = $1, blog_id = $2, error_message = $3, updated_at = NOW()
		WHERE id = $4
	`, status, blogID, msg, id)
	if err != nil {
		return fmt.Errorf("finish generation log: %w", err)
	}
	return nil
}

// List returns the most recent entries, newest first.
func (s *GenerationLogStore) List(ctx context.Context, limit int) ([]models.GenerationLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, status, categories, blog_id, error_message,
		       created_at, updated_at
		FROM content_generation_logs
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list generation logs: %w", err)
	}
	defer rows.Close()

	var items []models.GenerationLog
	for rows.Next() {
		var (
			l          models.GenerationLog
			categories string
		)
		if err := rows.Scan(
			&l.ID, &l.Status, &categories, &l.BlogID, &l.ErrorMessage,
			&l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan generation log: %w", err)
		}
		l.Categories = decodeList(categories)
		items = append(items, l)
	}
	return items, rows.Err()
}
