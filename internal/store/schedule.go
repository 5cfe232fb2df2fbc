// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"aidigest/internal/models"
)

// scheduleRowID pins the single content_schedules row. The schedule is a
// singleton: saves replace the whole configuration, last write wins.
const scheduleRowID = 1

// ScheduleStore persists the generation schedule in PostgreSQL.
type ScheduleStore struct {
	db *sql.DB
}

// NewScheduleStore creates a new ScheduleStore with the given database
// connection.
func NewScheduleStore(db *sql.DB) *ScheduleStore {
	return &ScheduleStore{db: db}
}

// Get returns the current schedule. If no row exists yet, the default
// (inactive) configuration is returned without creating one.
func (s *ScheduleStore) Get(ctx context.Context) (models.ScheduleConfig, error) {
	var (
		cfg        models.ScheduleConfig
		days       string
		categories string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT is_active, frequency, time_of_day, days_of_week, day_of_month,
		       categories, last_executed
		FROM content_schedules WHERE id = $1
	`, scheduleRowID).Scan(
		&cfg.IsActive, &cfg.Frequency, &cfg.Time, &days, &cfg.DayOfMonth,
		&categories, &cfg.LastExecuted,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultScheduleConfig(), nil
	}
	if err != nil {
		return models.ScheduleConfig{}, fmt.Errorf("get schedule: %w", err)
	}

	cfg.DaysOfWeek = decodeDays(days)
	cfg.Categories = decodeList(categories)
	return cfg, nil
}

// Save replaces the schedule configuration. LastExecuted is preserved from
// the stored row, not taken from cfg — only UpdateLastExecuted moves it.
func (s *ScheduleStore) Save(ctx context.Context, cfg models.ScheduleConfig) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO content_schedules
			(id, is_active, frequency, time_of_day, days_of_week,
			 day_of_month, categories, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (id) DO UPDATE SET
			is_active = EXCLUDED.is_active,
			frequency = EXCLUDED.frequency,
			time_of_day = EXCLUDED.time_of_day,
			days_of_week = EXCLUDED.days_of_week,
			day_of_month = EXCLUDED.day_of_month,
			categories = EXCLUDED.categories,
			updated_at = NOW()
	`, scheduleRowID, cfg.IsActive, cfg.Frequency, cfg.Time,
		encodeDays(cfg.DaysOfWeek), cfg.DayOfMonth, encodeList(cfg.Categories))
	if err != nil {
		return fmt.Errorf("save schedule: %w", err)
	}
	return nil
}

// UpdateLastExecuted stamps the last execution time. Creates the row with
// defaults if a run happened before the schedule was ever saved.
func (s *ScheduleStore) UpdateLastExecuted(ctx context.Context, t time.Time) error {
	def := models.DefaultScheduleConfig()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO content_schedules
			(id, is_active, frequency, time_of_day, days_of_week,
			 day_of_month, categories, last_executed, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (id) DO UPDATE SET
			last_executed = EXCLUDED.last_executed,
			updated_at = NOW()
	`, scheduleRowID, def.IsActive, def.Frequency, def.Time,
		encodeDays(def.DaysOfWeek), def.DayOfMonth, encodeList(def.Categories), t)
	if err != nil {
		return fmt.Errorf("update schedule last-executed: %w", err)
	}
	return nil
}

// encodeDays renders weekdays as a comma-separated list, e.g. "1,3,5".
func encodeDays(days []int) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}

func decodeDays(s string) []int {
	if s == "" {
		return nil
	}
	var days []int
	for _, part := range strings.Split(s, ",") {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	return days
}

func encodeList(items []string) string {
	return strings.Join(items, ",")
}

func decodeList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
