// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package providers adapts interchangeable model backends behind one
// interface. The validation engine never touches a provider; only the chat
// front-end wires generation to validation.
package providers

import (
	"context"
	"fmt"
	"os"
)

// Provider generates a model response for a user prompt.
type Provider interface {
	// Name identifies the backend for logs and audit records.
	Name() string

	// GenerateResponse produces the model reply to validate. Implementations
	// retry transient failures internally and honor ctx cancellation.
	GenerateResponse(ctx context.Context, prompt string) (string, error)
}

// Settings selects and configures a backend.
type Settings struct {
	Name         string // openai, groq, together, ollama
	Model        string
	BaseURL      string // optional override; defaults per backend
	APIKeyEnv    string // environment variable holding the API key
	SystemPrompt string
}

// Known OpenAI-compatible endpoints, keyed by provider name.
var compatibleBaseURLs = map[string]string{
	"openai":   "", // client default
	"groq":     "https://api.groq.com/openai/v1",
	"together": "https://api.together.xyz/v1",
}

// New builds the configured provider. Hosted backends require an API key in
// the configured environment variable; Ollama needs none.
func New(settings Settings) (Provider, error) {
	if settings.SystemPrompt == "" {
		return nil, fmt.Errorf("provider %q: system prompt must not be empty", settings.Name)
	}

	switch settings.Name {
	case "openai", "groq", "together":
		baseURL := compatibleBaseURLs[settings.Name]
		if settings.BaseURL != "" {
			baseURL = settings.BaseURL
		}
		key := os.Getenv(settings.APIKeyEnv)
		if key == "" {
			return nil, fmt.Errorf("provider %q: API key not found in $%s", settings.Name, settings.APIKeyEnv)
		}
		return newOpenAICompatible(settings.Name, key, baseURL, settings.Model, settings.SystemPrompt), nil
	case "ollama":
		return NewOllama(settings.BaseURL, settings.Model, settings.SystemPrompt), nil
	}
	return nil, fmt.Errorf("unknown provider %q", settings.Name)
}
