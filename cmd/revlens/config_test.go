// Copyright (C) 2025 The revlens authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Empty(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Empty(t, cfg.PromptTemplate)
}

func TestLoadConfig_Full(t *testing.T) {
	path := writeConfig(t, `
prompt_template: "Judge: {{.review}}"
columns:
  review: comments
  location: place
score_columns:
  pred_decision: Decision
  pred_violation: Primary Violation
  gt_decision: Truth
  gt_violation: TruthViolation
generation:
  temperature: 0.1
  max_tokens: 256
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Judge: {{.review}}", cfg.PromptTemplate)
	assert.Equal(t, "comments", cfg.Columns.Review)
	assert.Equal(t, "Truth", cfg.ScoreColumns.GTDecision)
	require.NotNil(t, cfg.Generation.Temperature)
	assert.InDelta(t, 0.1, float64(*cfg.Generation.Temperature), 1e-6)

	params := cfg.Generation.params()
	require.NotNil(t, params.MaxTokens)
	assert.Equal(t, 256, *params.MaxTokens)
}

func TestLoadConfig_InvalidGeneration(t *testing.T) {
	path := writeConfig(t, "generation:\n  temperature: 9.5\n")
	_, err := loadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := writeConfig(t, "generation: [not a map")
	_, err := loadConfig(path)
	assert.Error(t, err)
}
