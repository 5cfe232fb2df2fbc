// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging builds illustrative image URLs for blog posts by
// constructing deterministic GET URLs against a prompt-to-image rendering
// service. It performs no eager fetching and never returns an error —
// anything unusable degrades to a fixed placeholder image.
package imaging

import (
	"log/slog"
	"math/rand/v2"
	"net/url"
	"strconv"
	"strings"
)

// PlaceholderURL is returned whenever a real image URL cannot be built.
const PlaceholderURL = "https://placehold.co/1024x576/0f172a/e2e8f0?text=AI+Daily+Digest"

// qualitySuffix is appended to every prompt to bias the renderer toward
// usable editorial imagery.
const qualitySuffix = "high quality, professional, detailed, vibrant, 4k, photorealistic"

const (
	defaultBaseURL = "https://image.pollinations.ai"
	defaultWidth   = 1024
	defaultHeight  = 576
)

// Generator constructs prompt-to-image URLs. The zero seed function is
// random; tests inject a fixed one.
type Generator struct {
	baseURL string
	width   int
	height  int
	seedFn  func() int
}

// Option customises a Generator.
type Option func(*Generator)

// WithSeedFunc overrides the cache-busting seed source.
func WithSeedFunc(fn func() int) Option {
	return func(g *Generator) { g.seedFn = fn }
}

// WithSize overrides the requested image dimensions.
func WithSize(width, height int) Option {
	return func(g *Generator) {
		g.width = width
		g.height = height
	}
}

// New creates a Generator against the given rendering service base URL.
// An empty baseURL selects the default public service.
func New(baseURL string, opts ...Option) *Generator {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	g := &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		width:   defaultWidth,
		height:  defaultHeight,
		seedFn:  func() int { return rand.IntN(1_000_000) },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateImage returns a URL that renders an image for the prompt. The
// prompt is URL-encoded with quality suffix terms and a random seed for
// variation. Empty prompts and construction failures return the
// placeholder; this method never fails.
func (g *Generator) GenerateImage(prompt string) string {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return PlaceholderURL
	}

	full := prompt + ", " + qualitySuffix

	u, err := url.Parse(g.baseURL + "/prompt/" + url.PathEscape(full))
	if err != nil {
		slog.Warn("image url construction failed, using placeholder", "error", err)
		return PlaceholderURL
	}

	q := u.Query()
	q.Set("seed", strconv.Itoa(g.seedFn()))
	q.Set("width", strconv.Itoa(g.width))
	q.Set("height", strconv.Itoa(g.height))
	u.RawQuery = q.Encode()

	return u.String()
}
