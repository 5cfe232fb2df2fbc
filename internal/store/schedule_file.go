// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"aidigest/internal/models"
)

// FileScheduleStore persists the schedule as a JSON file. It is the
// fallback for deployments running without PostgreSQL and is handy in
// development. Writes go through a temp file plus rename so a crash cannot
// leave a half-written configuration behind.
type FileScheduleStore struct {
	mu   sync.Mutex
	path string
}

// NewFileScheduleStore creates a FileScheduleStore writing to path.
func NewFileScheduleStore(path string) *FileScheduleStore {
	return &FileScheduleStore{path: path}
}

// Get reads the schedule from disk. A missing file yields the default
// configuration; a corrupt file is an error, not a silent reset.
func (s *FileScheduleStore) Get(ctx context.Context) (models.ScheduleConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return models.DefaultScheduleConfig(), nil
	}
	if err != nil {
		return models.ScheduleConfig{}, fmt.Errorf("read schedule file: %w", err)
	}

	var cfg models.ScheduleConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return models.ScheduleConfig{}, fmt.Errorf("decode schedule file: %w", err)
	}
	return cfg, nil
}

// Save replaces the stored schedule, preserving the last-executed stamp
// already on disk.
func (s *FileScheduleStore) Save(ctx context.Context, cfg models.ScheduleConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, err := s.read(); err == nil {
		cfg.LastExecuted = prev.LastExecuted
	}
	return s.write(cfg)
}

// UpdateLastExecuted stamps the last execution time.
func (s *FileScheduleStore) UpdateLastExecuted(ctx context.Context, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.read()
	if err != nil {
		cfg = models.DefaultScheduleConfig()
	}
	cfg.LastExecuted = &t
	return s.write(cfg)
}

// read loads the current file without locking; callers hold mu.
func (s *FileScheduleStore) read() (models.ScheduleConfig, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return models.ScheduleConfig{}, err
	}
	var cfg models.ScheduleConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return models.ScheduleConfig{}, err
	}
	return cfg, nil
}

func (s *FileScheduleStore) write(cfg models.ScheduleConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode schedule: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create schedule dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".schedule-*.json")
	if err != nil {
		return fmt.Errorf("write schedule file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write schedule file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write schedule file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace schedule file: %w", err)
	}
	return nil
}
