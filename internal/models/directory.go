// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscriber is a newsletter signup. Emails are unique.
type Subscriber struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Agent is one entry in the AI agent/course directory shown on the
// marketing site.
type Agent struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	URL         string    `json:"url"`
	Pricing     string    `json:"pricing"` // "free", "freemium", "paid"
	CreatedAt   time.Time `json:"created_at"`
}

// PageContent is an editable page-content blob keyed by page name. The
// admin dashboard replaces the whole blob on save.
type PageContent struct {
	Key       string    `json:"key"`
	Content   string    `json:"content"` // JSON document
	UpdatedAt time.Time `json:"updated_at"`
}
