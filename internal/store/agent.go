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

// AgentStore manages the AI agent directory.
type AgentStore struct {
	db *sql.DB
}

// NewAgentStore creates a new AgentStore with the given database connection.
func NewAgentStore(db *sql.DB) *AgentStore {
	return &AgentStore{db: db}
}

// List returns all directory entries ordered by name.
func (s *AgentStore) List(ctx context.Context) ([]models.Agent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, category, url, pricing, created_at
		FROM agents
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	defer rows.Close()

	var items []models.Agent
	for rows.Next() {
		var a models.Agent
		if err := rows.Scan(
			&a.ID, &a.Name, &a.Description, &a.Category, &a.URL,
			&a.Pricing, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan agent: %w", err)
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

// Create inserts a directory entry and returns it with the generated ID.
func (s *AgentStore) Create(ctx context.Context, a *models.Agent) (*models.Agent, error) {
	result := &models.Agent{}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO agents (name, description, category, url, pricing)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, description, category, url, pricing, created_at
	`, a.Name, a.Description, a.Category, a.URL, a.Pricing).Scan(
		&result.ID, &result.Name, &result.Description, &result.Category,
		&result.URL, &result.Pricing, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}
	return result, nil
}

// Delete removes a directory entry. Returns ErrNotFound if no row matched.
func (s *AgentStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM agents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete agent: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
