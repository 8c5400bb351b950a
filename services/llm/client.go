// Copyright (C) 2025 The revlens authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package llm provides text-generation clients for the local model backends
// revlens can talk to. The classifier only needs single-shot completion, so
// the interface is one blocking call.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// GenerationParams carries optional sampling parameters. Nil fields fall back
// to per-backend defaults.
type GenerationParams struct {
	Temperature *float32 `json:"temperature"`
	TopK        *int     `json:"top_k"`
	TopP        *float32 `json:"top_p"`
	MaxTokens   *int     `json:"max_tokens"`
	Stop        []string `json:"stop"`
}

// Client is the standard interface for any text-generation backend.
type Client interface {
	Generate(ctx context.Context, prompt string, params GenerationParams) (string, error)
}

// NewClient selects a backend from LLM_BACKEND_TYPE. Ollama is the default;
// "openai" covers any OpenAI-compatible server (vLLM, llama.cpp server, or
// the hosted API).
func NewClient() (Client, error) {
	backend := os.Getenv("LLM_BACKEND_TYPE")
	switch backend {
	case "", "ollama":
		return NewOllamaClient()
	case "openai":
		return NewOpenAIClient()
	default:
		slog.Error("Unknown LLM backend", "backend", backend)
		return nil, fmt.Errorf("unknown LLM_BACKEND_TYPE %q (want ollama or openai)", backend)
	}
}
