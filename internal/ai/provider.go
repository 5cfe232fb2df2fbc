// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai generates blog article drafts through pluggable LLM providers
// (Perplexity, HuggingFace). Each provider implements the Provider
// interface, and the Registry selects the active one by name. Provider
// responses are recovered through a multi-stage parser so that imperfect
// model output still yields a usable draft.
package ai

import (
	"context"
	"fmt"
	"sync"
)

// Draft holds the four article fields a provider must produce. Category is
// already normalized onto the closed category set when a Draft is returned.
type Draft struct {
	Title    string `json:"title"`
	Content  string `json:"content"` // semantic HTML
	Excerpt  string `json:"excerpt"`
	Category string `json:"category"`
}

// Provider defines the interface that all content providers implement.
// Each provider handles its own HTTP communication; response recovery and
// field defaulting are shared (see draft.go).
type Provider interface {
	// GenerateBlogContent asks the LLM for an article about the given
	// category. category may be empty, in which case the provider picks a
	// general AI topic. Failures carry the *Error taxonomy; no retry is
	// attempted at this layer.
	GenerateBlogContent(ctx context.Context, category string) (*Draft, error)

	// Name returns the provider identifier (e.g., "perplexity").
	Name() string
}

// ProviderConfig holds the credentials and settings for a single provider.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Registry manages available content providers and selects the active one.
// It supports runtime switching by changing the active provider name.
// All methods are safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	active    string
}

// NewRegistry creates a registry and initialises providers for every config
// that has a non-empty API key. Providers without keys are silently skipped;
// selecting one later surfaces a configuration error.
func NewRegistry(active string, configs map[string]ProviderConfig) *Registry {
	r := &Registry{
		providers: make(map[string]Provider),
		active:    active,
	}

	for name, cfg := range configs {
		if cfg.APIKey == "" {
			continue
		}
		switch name {
		case "perplexity":
			r.providers[name] = newPerplexity(cfg)
		case "huggingface":
			r.providers[name] = newHuggingFace(cfg)
		}
	}

	return r
}

// GenerateBlogContent calls the active provider.
func (r *Registry) GenerateBlogContent(ctx context.Context, category string) (*Draft, error) {
	p, err := r.Active()
	if err != nil {
		return nil, err
	}
	return p.GenerateBlogContent(ctx, category)
}

// Active returns the currently active provider. A missing key is a
// configuration error the operator must fix in settings.
func (r *Registry) Active() (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[r.active]
	if !ok {
		return nil, &Error{
			Provider: r.active,
			Kind:     KindConfiguration,
			Message:  fmt.Sprintf("no API key configured for provider %q", r.active),
		}
	}
	return p, nil
}

// SetActive switches the active provider at runtime. Returns an error if
// the named provider has no API key configured.
func (r *Registry) SetActive(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[name]; !ok {
		return &Error{
			Provider: name,
			Kind:     KindConfiguration,
			Message:  fmt.Sprintf("provider %q is not available (no API key?)", name),
		}
	}
	r.active = name
	return nil
}

// ActiveName returns the name of the currently active provider.
func (r *Registry) ActiveName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.active
}

// Available returns the names of all providers that have valid API keys.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}

// Register adds or replaces a provider in the registry. This allows
// injecting custom providers at runtime (e.g. for testing).
func (r *Registry) Register(name string, p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = p
}

// HasProvider checks whether a named provider is configured and available.
func (r *Registry) HasProvider(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.providers[name]
	return ok
}

// buildPrompt creates the instruction sent to every provider. The model is
// asked for a single JSON object with exactly the four Draft fields; the
// parser in draft.go copes when it answers in prose anyway.
func buildPrompt(category string) string {
	topic := category
	if topic == "" {
		topic = "artificial intelligence"
	}
	return fmt.Sprintf(`Write an insightful blog article about %s for a daily AI newsletter audience.

Respond with a single JSON object and nothing else, in exactly this shape:
{
  "title": "a compelling, specific headline under 80 characters",
  "content": "the full article body as semantic HTML: <h2> subheadings, <p> paragraphs, <ul>/<li> lists where useful, 500-800 words",
  "excerpt": "a 1-2 sentence summary under 160 characters",
  "category": "%s"
}

Do not wrap the JSON in markdown code fences. Do not add commentary before or after the JSON.`, topic, topic)
}
