// Copyright (C) 2025 The revlens authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/revlens/revlens/pkg/ux"
	"github.com/revlens/revlens/services/dataset"
	"github.com/revlens/revlens/services/scoring"
)

// runScore compares predictions against ground truth in one file and writes
// the mismatch report.
func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	table, err := dataset.Read(args[0])
	if err != nil {
		return err
	}

	cols := scoring.DefaultColumns()
	if cfg.ScoreColumns != (scoring.Columns{}) {
		cols = cfg.ScoreColumns
	}
	if scoreIDColumn != "" {
		cols.ID = scoreIDColumn
	}
	if !noPrompt && ux.Interactive() {
		cols = promptScoreColumns(table, cols)
	}

	report, err := scoring.Evaluate(table, cols)
	if errors.Is(err, scoring.ErrNoRows) {
		ux.Warning("No rows to score in " + args[0])
		return nil
	}
	if err != nil {
		return err
	}

	printReport(report)

	outPath := mismatchPath
	if outPath == "" {
		outPath = scoring.DefaultMismatchFile
	}
	if err := scoring.WriteMismatches(report.Mismatches, outPath); err != nil {
		return err
	}
	if len(report.Mismatches) > 0 {
		ux.Info(fmt.Sprintf("Saved mismatch report: %s", outPath))
	}
	return nil
}

// promptScoreColumns confirms the column names with the operator, showing
// the detected defaults.
func promptScoreColumns(table *dataset.Table, cols scoring.Columns) scoring.Columns {
	fmt.Printf("Detected headers: %v\n\n", table.Headers)
	reader := bufio.NewReader(os.Stdin)
	cols.PredDecision = ask(reader, "Prediction decision column", cols.PredDecision)
	cols.PredViolation = ask(reader, "Prediction violation column", cols.PredViolation)
	cols.GTDecision = ask(reader, "Ground truth decision column", cols.GTDecision)
	cols.GTViolation = ask(reader, "Ground truth violation column", cols.GTViolation)
	cols.ID = ask(reader, "ID column (Enter to skip)", cols.ID)
	return cols
}

func printReport(report *scoring.Report) {
	ux.Title("Scoring Results")
	ux.Info(fmt.Sprintf("Total rows: %d", report.Total))
	ux.Info(fmt.Sprintf("Decision accuracy:  %d/%d = %.2f%%",
		report.DecisionMatches, report.Total, report.DecisionAccuracy*100))
	ux.Info(fmt.Sprintf("Violation accuracy: %d/%d = %.2f%%",
		report.ViolationMatches, report.Total, report.ViolationAccuracy*100))
	if report.Unrecognized > 0 {
		ux.Warning(fmt.Sprintf("%d label cells were outside the canonical vocabulary", report.Unrecognized))
	}
	if len(report.Mismatches) == 0 {
		ux.Success("No violation mismatches.")
	}
}
