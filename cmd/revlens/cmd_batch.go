// Copyright (C) 2025 The revlens authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/revlens/revlens/pkg/ux"
	"github.com/revlens/revlens/services/classifier"
	"github.com/revlens/revlens/services/dataset"
)

// runBatch classifies every review in a tabular file and writes the
// evaluated copy next to it.
func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	clf, err := buildClassifier(cfg)
	if err != nil {
		return err
	}
	return classifyFile(cmd.Context(), clf, cfg, args[0])
}

// classifyFile runs one batch: read, resolve columns, classify each row in
// order, write the output. Rows are processed sequentially; the mid-batch
// progress stays on stderr via slog so stdout remains clean.
func classifyFile(ctx context.Context, clf *classifier.Classifier, cfg appConfig, path string) error {
	runID := uuid.NewString()
	logger := slog.With("run_id", runID, "file", path)

	table, err := dataset.Read(path)
	if err != nil {
		return err
	}

	mapping := cfg.Columns
	if reviewColumn != "" {
		mapping.Review = reviewColumn
	}
	mapping, err = dataset.ResolveColumns(table, mapping)
	if err != nil {
		return err
	}

	reviews, rowIdx := dataset.Reviews(table, mapping)
	if len(reviews) == 0 {
		return fmt.Errorf("no usable review rows in %s", path)
	}
	logger.Info("Starting batch classification", "rows", len(reviews))

	results := make(map[int]classifier.Result, len(reviews))
	flagged := 0
	for i, review := range reviews {
		result, err := clf.ClassifyReview(ctx, review)
		if err != nil {
			// One hard backend failure aborts the batch; partially
			// classified rows are not written.
			return fmt.Errorf("row %d: %w", rowIdx[i]+2, err)
		}
		if result.Decision == "Flagged" {
			flagged++
		}
		results[rowIdx[i]] = result
		logger.Debug("Classified row", "row", rowIdx[i]+2, "decision", result.Decision)
	}

	outPath := dataset.EvaluatedPath(path)
	if err := dataset.WriteEvaluated(table, results, outPath); err != nil {
		return err
	}

	ux.Success(fmt.Sprintf("Classified %d reviews (%d flagged) -> %s", len(reviews), flagged, outPath))
	return nil
}
