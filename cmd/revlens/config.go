// Copyright (C) 2025 The revlens authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/revlens/revlens/services/dataset"
	"github.com/revlens/revlens/services/llm"
	"github.com/revlens/revlens/services/scoring"
)

// appConfig is the optional YAML file behind --config. Everything has a
// default, so running without a file is the normal case.
type appConfig struct {
	// PromptTemplate overrides the built-in policy rubric. Must reference
	// {{.review}}.
	PromptTemplate string `yaml:"prompt_template"`

	// Columns maps driver input columns.
	Columns dataset.ColumnMapping `yaml:"columns"`

	// ScoreColumns maps the scored file's prediction/ground-truth columns.
	ScoreColumns scoring.Columns `yaml:"score_columns"`

	// Generation tunes the sampling parameters sent to the backend.
	Generation generationConfig `yaml:"generation"`
}

type generationConfig struct {
	Temperature *float32 `yaml:"temperature" validate:"omitempty,gte=0,lte=2"`
	TopK        *int     `yaml:"top_k" validate:"omitempty,gt=0"`
	TopP        *float32 `yaml:"top_p" validate:"omitempty,gt=0,lte=1"`
	MaxTokens   *int     `yaml:"max_tokens" validate:"omitempty,gt=0"`
}

func (g generationConfig) params() llm.GenerationParams {
	return llm.GenerationParams{
		Temperature: g.Temperature,
		TopK:        g.TopK,
		TopP:        g.TopP,
		MaxTokens:   g.MaxTokens,
	}
}

// loadConfig reads and validates the --config file. An empty path returns
// the zero config.
func loadConfig(path string) (appConfig, error) {
	var cfg appConfig
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	slog.Info("Loaded config", "path", path)
	return cfg, nil
}
