// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"aidigest/internal/models"
)

// SubscriberStore manages newsletter signups.
type SubscriberStore struct {
	db *sql.DB
}

// NewSubscriberStore creates a new SubscriberStore with the given database
// connection.
func NewSubscriberStore(db *sql.DB) *SubscriberStore {
	return &SubscriberStore{db: db}
}

// Add records a signup. Emails are lower-cased and unique; signing up twice
// is not an error, created reports whether a new row was inserted.
func (s *SubscriberStore) Add(ctx context.Context, email string) (created bool, err error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO newsletter_subscribers (email)
		VALUES ($1)
		ON CONFLICT (email) DO NOTHING
	`, email)
	if err != nil {
		return false, fmt.Errorf("add subscriber: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("add subscriber: %w", err)
	}
	return n > 0, nil
}

// List returns all subscribers, newest first.
func (s *SubscriberStore) List(ctx context.Context) ([]models.Subscriber, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, email, created_at
		FROM newsletter_subscribers
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()

	var items []models.Subscriber
	for rows.Next() {
		var sub models.Subscriber
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		items = append(items, sub)
	}
	return items, rows.Err()
}

// Count returns the number of subscribers.
func (s *SubscriberStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM newsletter_subscribers`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count subscribers: %w", err)
	}
	return count, nil
}
