// Copyright (C) 2025 The revlens authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"bogus", LevelInfo},
	}
	for _, tc := range tests {
		if got := ParseLevel(tc.input); got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestFileLogging(t *testing.T) {
	dir := t.TempDir()
	logger := New(Config{
		Level:   LevelInfo,
		Service: "test",
		LogDir:  dir,
		Quiet:   true,
	})

	logger.Slog().Info("hello from test", "key", "value")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	wantFile := filepath.Join(dir, "test_"+time.Now().Format("2006-01-02")+".log")
	data, err := os.ReadFile(wantFile)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}

	line := strings.TrimSpace(string(data))
	var record map[string]any
	if err := json.Unmarshal([]byte(line), &record); err != nil {
		t.Fatalf("file log is not JSON: %v (%q)", err, line)
	}
	if record["msg"] != "hello from test" {
		t.Errorf("msg = %v, want hello from test", record["msg"])
	}
	if record["service"] != "test" {
		t.Errorf("service = %v, want test", record["service"])
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	logger := New(Config{LogDir: t.TempDir(), Quiet: true})
	if err := logger.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestDebugFiltered(t *testing.T) {
	dir := t.TempDir()
	logger := New(Config{Level: LevelInfo, Service: "test", LogDir: dir, Quiet: true})
	logger.Slog().Debug("should not appear")
	logger.Slog().Info("should appear")
	_ = logger.Close()

	wantFile := filepath.Join(dir, "test_"+time.Now().Format("2006-01-02")+".log")
	data, err := os.ReadFile(wantFile)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if strings.Contains(string(data), "should not appear") {
		t.Error("debug record leaked through Info level")
	}
	if !strings.Contains(string(data), "should appear") {
		t.Error("info record missing")
	}
}
