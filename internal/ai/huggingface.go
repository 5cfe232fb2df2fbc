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

// huggingFaceProvider implements the Provider interface using the
// HuggingFace Inference API (POST /models/{model}).
type huggingFaceProvider struct {
	config ProviderConfig
	client *http.Client
}

// newHuggingFace creates a new HuggingFace provider.
func newHuggingFace(cfg ProviderConfig) *huggingFaceProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api-inference.huggingface.co"
	}
	if cfg.Model == "" {
		cfg.Model = "mistralai/Mistral-7B-Instruct-v0.3"
	}
	return &huggingFaceProvider{
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *huggingFaceProvider) Name() string { return "huggingface" }

// GenerateBlogContent sends an inference request and runs the response
// through the shared draft parser. HuggingFace models answer in prose far
// more often than the chat APIs, so the synthesis fallback carries most of
// the weight here.
func (p *huggingFaceProvider) GenerateBlogContent(ctx context.Context, category string) (*Draft, error) {
	body := hfRequest{
		Inputs: buildPrompt(category),
		Parameters: hfParameters{
			MaxNewTokens:   1500,
			ReturnFullText: false,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("huggingface marshal: %w", err)
	}

	url := p.config.BaseURL + "/models/" + p.config.Model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("huggingface request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &Error{Provider: p.Name(), Kind: KindServer, Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Provider: p.Name(), Kind: KindServer, Message: "read body: " + err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(p.Name(), resp.StatusCode, string(respBody))
	}

	raw, err := extractGeneratedText(respBody)
	if err != nil {
		return nil, &Error{Provider: p.Name(), Kind: KindMalformedResponse, Message: err.Error()}
	}

	return parseDraft(p.Name(), raw, category)
}

// extractGeneratedText pulls the generated text out of the inference API
// envelope. The classic API returns a one-element array; router-style
// deployments return a bare object.
func extractGeneratedText(body []byte) (string, error) {
	var list []hfResult
	if err := json.Unmarshal(body, &list); err == nil && len(list) > 0 {
		return list[0].GeneratedText, nil
	}

	var single hfResult
	if err := json.Unmarshal(body, &single); err == nil && single.GeneratedText != "" {
		return single.GeneratedText, nil
	}

	return "", fmt.Errorf("unrecognized inference response envelope")
}

// --- HuggingFace Inference API types ---

type hfParameters struct {
	MaxNewTokens   int  `json:"max_new_tokens,omitempty"`
	ReturnFullText bool `json:"return_full_text"`
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfResult struct {
	GeneratedText string `json:"generated_text"`
}
