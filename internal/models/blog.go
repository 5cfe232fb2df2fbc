// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the domain types shared across stores, the
// generation pipeline, and the HTTP handlers.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// The closed set of blog categories. Free-text categories coming back from
// an LLM are normalized onto this set before persistence.
const (
	CategoryAITrends        = "AI Trends"
	CategoryDeepLearning    = "Deep Learning"
	CategoryAIEthics        = "AI Ethics"
	CategoryMachineLearning = "Machine Learning"
	CategoryAIApplications  = "AI Applications"
)

// Categories lists all allowed blog categories in display order. This is
// also the default generation rotation for the scheduler.
var Categories = []string{
	CategoryAITrends,
	CategoryDeepLearning,
	CategoryAIEthics,
	CategoryMachineLearning,
	CategoryAIApplications,
}

// Blog represents a published or generated article.
type Blog struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Content         string     `json:"content"` // HTML body
	Excerpt         string     `json:"excerpt"`
	Category        string     `json:"category"`
	ImageURL        string     `json:"image_url"`
	Date            string     `json:"date"`      // localized display string
	ReadTime        int        `json:"read_time"` // minutes
	Slug            *string    `json:"slug,omitempty"`
	MetaDescription *string    `json:"meta_description,omitempty"`
	Keywords        *string    `json:"keywords,omitempty"`
	Tags            *string    `json:"tags,omitempty"`
	CanonicalURL    *string    `json:"canonical_url,omitempty"`
	AuthorName      *string    `json:"author_name,omitempty"`
	AuthorBio       *string    `json:"author_bio,omitempty"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// IsKnownCategory reports whether c is one of the allowed categories.
func IsKnownCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// NormalizeCategory maps a free-text category returned by an LLM onto the
// closed category set using substring heuristics. If nothing matches, the
// originally requested category wins; if none was requested either, the
// result defaults to "AI Trends".
func NormalizeCategory(raw, requested string) string {
	raw = strings.TrimSpace(raw)
	if IsKnownCategory(raw) {
		return raw
	}

	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "trend"):
		return CategoryAITrends
	case strings.Contains(lower, "ethic"):
		return CategoryAIEthics
	case strings.Contains(lower, "deep"):
		return CategoryDeepLearning
	case strings.Contains(lower, "machine"):
		return CategoryMachineLearning
	case strings.Contains(lower, "applica"):
		return CategoryAIApplications
	case strings.Contains(lower, "learn"):
		return CategoryDeepLearning
	}

	if IsKnownCategory(requested) {
		return requested
	}
	return CategoryAITrends
}
