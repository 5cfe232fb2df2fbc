// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// GenerationStatus is the lifecycle state of one scheduled generation run.
type GenerationStatus string

const (
	GenerationPending GenerationStatus = "pending"
	GenerationSuccess GenerationStatus = "success"
	GenerationError   GenerationStatus = "error"
)

// GenerationLog is a best-effort audit record for a scheduled run. A row is
// created as pending when the run starts and updated to success or error
// when it finishes. Failures writing the log never abort generation.
type GenerationLog struct {
	ID           uuid.UUID        `json:"id"`
	Status       GenerationStatus `json:"status"`
	Categories   []string         `json:"categories"`
	BlogID       *uuid.UUID       `json:"blog_id,omitempty"`
	ErrorMessage *string          `json:"error_message,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}
