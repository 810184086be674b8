// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package providers

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"medgate/internal/resilience"
)

// openAICompatible talks to any OpenAI-compatible chat completion API.
// Groq and Together expose the same wire protocol, so one adapter covers
// all three hosted backends.
type openAICompatible struct {
	name         string
	client       *openai.Client
	model        string
	systemPrompt string
	retry        resilience.RetryConfig
}

func newOpenAICompatible(name, apiKey, baseURL, model, systemPrompt string) *openAICompatible {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &openAICompatible{
		name:         name,
		client:       openai.NewClientWithConfig(cfg),
		model:        model,
		systemPrompt: systemPrompt,
		retry:        resilience.ProviderRetryConfig(),
	}
}

func (p *openAICompatible) Name() string {
	return p.name
}

// GenerateResponse sends the system prompt plus user prompt and returns the
// first completion choice. Transient API failures are retried with backoff.
func (p *openAICompatible) GenerateResponse(ctx context.Context, prompt string) (string, error) {
	return resilience.RetryWithResult(ctx, p.retry, func(ctx context.Context) (string, error) {
		resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: p.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: p.systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		})
		if err != nil {
			return "", fmt.Errorf("%s chat completion: %w", p.name, err)
		}
		if len(resp.Choices) == 0 {
			return "", resilience.NewTransientError(
				fmt.Sprintf("%s returned no choices", p.name), nil)
		}
		return resp.Choices[0].Message.Content, nil
	})
}
