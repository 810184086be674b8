// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"medgate/internal/resilience"
)

// DefaultOllamaBaseURL is the local daemon's default listen address.
const DefaultOllamaBaseURL = "http://localhost:11434"

// Ollama talks to a local Ollama daemon over its native chat API. Unlike the
// hosted backends it needs no API key, but the daemon must be running.
type Ollama struct {
	baseURL      string
	model        string
	systemPrompt string
	client       *http.Client
	retry        resilience.RetryConfig
}

// NewOllama creates an Ollama provider. An empty baseURL uses the local
// daemon default.
func NewOllama(baseURL, model, systemPrompt string) *Ollama {
	if baseURL == "" {
		baseURL = DefaultOllamaBaseURL
	}
	return &Ollama{
		baseURL:      baseURL,
		model:        model,
		systemPrompt: systemPrompt,
		client:       &http.Client{Timeout: 120 * time.Second},
		retry:        resilience.DefaultRetryConfig(),
	}
}

func (o *Ollama) Name() string {
	return "ollama"
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

type ollamaChatResponse struct {
	Message ollamaMessage `json:"message"`
	Error   string        `json:"error,omitempty"`
}

// GenerateResponse sends a non-streaming chat request to /api/chat.
func (o *Ollama) GenerateResponse(ctx context.Context, prompt string) (string, error) {
	payload := ollamaChatRequest{
		Model: o.model,
		Messages: []ollamaMessage{
			{Role: "system", Content: o.systemPrompt},
			{Role: "user", Content: prompt},
		},
		Stream: false,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	return resilience.RetryWithResult(ctx, o.retry, func(ctx context.Context) (string, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/chat", bytes.NewReader(body))
		if err != nil {
			return "", err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := o.client.Do(req)
		if err != nil {
			return "", fmt.Errorf("ollama chat: %w", err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("read ollama response: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return "", classifyOllamaStatus(resp.StatusCode, data)
		}

		var chat ollamaChatResponse
		if err := json.Unmarshal(data, &chat); err != nil {
			return "", fmt.Errorf("decode ollama response: %w", err)
		}
		if chat.Error != "" {
			return "", resilience.NewPermanentError(fmt.Sprintf("ollama: %s", chat.Error), nil)
		}
		return chat.Message.Content, nil
	})
}

// CheckInstallation verifies the daemon is reachable.
func (o *Ollama) CheckInstallation(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/api/tags", nil)
	if err != nil {
		return err
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama not reachable at %s: %w", o.baseURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama health check returned %d", resp.StatusCode)
	}
	return nil
}

// ListModels returns the names of locally installed models.
func (o *Ollama) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, err
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list ollama models: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list ollama models returned %d", resp.StatusCode)
	}

	var tags struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("decode ollama models: %w", err)
	}
	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

func classifyOllamaStatus(status int, body []byte) error {
	msg := fmt.Sprintf("ollama returned %d: %s", status, bytes.TrimSpace(body))
	if status == http.StatusNotFound {
		return resilience.NewPermanentError(msg, nil)
	}
	if status >= 500 || status == http.StatusTooManyRequests {
		return resilience.NewTransientError(msg, nil)
	}
	return resilience.NewPermanentError(msg, nil)
}
