// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// perplexityProvider implements the Provider interface using the Perplexity
// chat completions API (POST /chat/completions, OpenAI-compatible).
type perplexityProvider struct {
	config ProviderConfig
	client *http.Client
}

// newPerplexity creates a new Perplexity provider.
func newPerplexity(cfg ProviderConfig) *perplexityProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.perplexity.ai"
	}
	if cfg.Model == "" {
		cfg.Model = "sonar"
	}
	return &perplexityProvider{
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *perplexityProvider) Name() string { return "perplexity" }

// GenerateBlogContent sends a chat completion request and runs the response
// through the shared draft parser.
func (p *perplexityProvider) GenerateBlogContent(ctx context.Context, category string) (*Draft, error) {
	body := chatRequest{
		Model: p.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a technology journalist writing for an AI-focused daily digest. You always answer with valid JSON when asked to."},
			{Role: "user", Content: buildPrompt(category)},
		},
	}

	raw, err := p.doChat(ctx, body)
	if err != nil {
		return nil, err
	}

	return parseDraft(p.Name(), raw, category)
}

// doChat performs the HTTP call to the chat completions endpoint and
// returns the assistant's response text.
func (p *perplexityProvider) doChat(ctx context.Context, body chatRequest) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("perplexity marshal: %w", err)
	}

	url := p.config.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("perplexity request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", &Error{Provider: p.Name(), Kind: KindServer, Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Provider: p.Name(), Kind: KindServer, Message: "read body: " + err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		return "", statusError(p.Name(), resp.StatusCode, string(respBody))
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", &Error{Provider: p.Name(), Kind: KindMalformedResponse, Message: "unmarshal envelope: " + err.Error()}
	}

	if len(result.Choices) == 0 {
		return "", &Error{Provider: p.Name(), Kind: KindMalformedResponse, Message: "no choices returned"}
	}

	return result.Choices[0].Message.Content, nil
}

// --- OpenAI-compatible request/response types ---

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}
