// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaGenerateResponse(t *testing.T) {
	var gotReq ollamaChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message": {"role": "assistant", "content": "Rest and fluids."}}`))
	}))
	defer server.Close()

	provider := NewOllama(server.URL, "llama3", "system prompt")
	response, err := provider.GenerateResponse(context.Background(), "cold remedies")
	require.NoError(t, err)
	assert.Equal(t, "Rest and fluids.", response)

	assert.Equal(t, "llama3", gotReq.Model)
	assert.False(t, gotReq.Stream)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
	assert.Equal(t, "cold remedies", gotReq.Messages[1].Content)
}

func TestOllamaModelNotFound(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "model not found"}`))
	}))
	defer server.Close()

	provider := NewOllama(server.URL, "missing-model", "system prompt")
	_, err := provider.GenerateResponse(context.Background(), "prompt")
	require.Error(t, err)
	assert.Equal(t, 1, calls, "404 responses must not be retried")
}

func TestOllamaErrorField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error": "out of memory"}`))
	}))
	defer server.Close()

	provider := NewOllama(server.URL, "llama3", "system prompt")
	_, err := provider.GenerateResponse(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of memory")
}

func TestOllamaCheckInstallation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"models": []}`))
	}))
	defer server.Close()

	provider := NewOllama(server.URL, "llama3", "system prompt")
	require.NoError(t, provider.CheckInstallation(context.Background()))

	server.Close()
	assert.Error(t, provider.CheckInstallation(context.Background()))
}

func TestOllamaListModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"models": [{"name": "llama3:latest"}, {"name": "mistral:7b"}]}`))
	}))
	defer server.Close()

	provider := NewOllama(server.URL, "llama3", "system prompt")
	models, err := provider.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"llama3:latest", "mistral:7b"}, models)
}

func TestOllamaDefaultBaseURL(t *testing.T) {
	provider := NewOllama("", "llama3", "system prompt")
	assert.Equal(t, DefaultOllamaBaseURL, provider.baseURL)
}
