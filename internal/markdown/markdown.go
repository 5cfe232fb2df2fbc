// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markdown converts Markdown source text into HTML using goldmark.
// It is used by the content-generation fallback path to turn plain-text LLM
// output (bold markers, heading markers, paragraph breaks) into semantic
// HTML.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// md is the configured goldmark instance, reused across calls.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM, // tables, strikethrough, autolinks
	),
	goldmark.WithRendererOptions(
		html.WithUnsafe(), // LLM responses may already contain raw HTML fragments
	),
)

// ToHTML converts Markdown source into HTML. Raw HTML embedded in the
// source is passed through unchanged.
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
