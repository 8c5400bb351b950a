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
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/revlens/revlens/pkg/ux"
)

// watchable extensions; everything else landing in the directory is
// ignored.
var watchExtensions = map[string]bool{
	".csv": true, ".xlsx": true, ".xlsm": true, ".json": true, ".xml": true,
}

// runWatch classifies data files as they are dropped into a directory.
// Output files written by the batch itself (the _evaluated copies) are
// skipped so a run never re-triggers itself.
func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("watch directory not found: %s", dir)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	clf, err := buildClassifier(cfg)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	ux.Info("Watching " + dir + " for new review files (Ctrl-C to stop)")
	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Base(event.Name)
			ext := strings.ToLower(filepath.Ext(name))
			if !watchExtensions[ext] || strings.Contains(name, "_evaluated") {
				continue
			}
			// Give the producer a moment to finish writing.
			time.Sleep(500 * time.Millisecond)
			slog.Info("New file detected", "file", event.Name)
			if err := classifyFile(ctx, clf, cfg, event.Name); err != nil {
				ux.Error(fmt.Sprintf("%s: %v", name, err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", "error", err)
		}
	}
}
