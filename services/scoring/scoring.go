// Copyright (C) 2025 The revlens authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package scoring compares predicted labels against ground truth and
// produces agreement statistics plus a mismatch report.
package scoring

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/revlens/revlens/services/dataset"
	"github.com/revlens/revlens/services/labels"
)

// DefaultMismatchFile is where WriteMismatches writes unless told otherwise.
const DefaultMismatchFile = "mismatches.csv"

// ErrNoRows is returned when there is nothing to score. Callers report it as
// a "no rows to score" condition instead of dividing by zero.
var ErrNoRows = errors.New("no rows to score")

// Columns names the prediction, ground-truth, and context columns in the
// scored file.
type Columns struct {
	PredDecision  string `yaml:"pred_decision"`
	PredViolation string `yaml:"pred_violation"`
	GTDecision    string `yaml:"gt_decision"`
	GTViolation   string `yaml:"gt_violation"`
	ID            string `yaml:"id"`     // optional
	Review        string `yaml:"review"` // optional, for mismatch context
}

// DefaultColumns matches the headers the batch driver writes plus the usual
// ground-truth naming.
func DefaultColumns() Columns {
	return Columns{
		PredDecision:  "Decision",
		PredViolation: "Primary Violation",
		GTDecision:    "GT_Decision",
		GTViolation:   "GT_Violation",
		Review:        "review",
	}
}

// Mismatch records one row whose canonical violations disagreed.
type Mismatch struct {
	ID            string
	PredDecision  string
	GTDecision    string
	PredViolation string
	GTViolation   string
	Review        string
}

// Report is the aggregate outcome of a scoring run.
type Report struct {
	Total             int
	DecisionMatches   int
	ViolationMatches  int
	DecisionAccuracy  float64
	ViolationAccuracy float64

	// Unrecognized counts label cells (across all four columns) that could
	// not be canonicalized. Those cells still participate in comparison as
	// raw text, so a non-zero count means the accuracies lean on
	// uncontrolled vocabulary.
	Unrecognized int

	Mismatches []Mismatch
}

// Evaluate scores every row of the table.
//
// Both decision cells and both violation cells are canonicalized, the
// Valid-forces-None override is applied independently to prediction and
// ground truth, and matches are counted per field. Unrecognized labels
// compare by their raw text (Label.Equal), preserving the historical
// behavior of comparing uncanonicalized strings; the Unrecognized counter
// surfaces how often that happened.
//
// An empty table returns ErrNoRows.
func Evaluate(t *dataset.Table, cols Columns) (*Report, error) {
	if t == nil || len(t.Rows) == 0 {
		return nil, ErrNoRows
	}
	for _, required := range []string{cols.PredDecision, cols.PredViolation, cols.GTDecision, cols.GTViolation} {
		if !t.HasHeader(required) {
			return nil, fmt.Errorf("column %q not found in headers %v", required, t.Headers)
		}
	}

	report := &Report{Total: len(t.Rows)}
	for _, row := range t.Rows {
		predDec := labels.CanonicalDecision(t.Value(row, cols.PredDecision))
		gtDec := labels.CanonicalDecision(t.Value(row, cols.GTDecision))
		predVio := labels.CanonicalViolation(t.Value(row, cols.PredViolation))
		gtVio := labels.CanonicalViolation(t.Value(row, cols.GTViolation))

		predVio = labels.ApplyValidOverride(predDec, predVio)
		gtVio = labels.ApplyValidOverride(gtDec, gtVio)

		for _, l := range []labels.Label{predDec, gtDec, predVio, gtVio} {
			if !l.Known {
				report.Unrecognized++
			}
		}

		if predDec.Equal(gtDec) {
			report.DecisionMatches++
		}
		if predVio.Equal(gtVio) {
			report.ViolationMatches++
		} else {
			id := ""
			if cols.ID != "" {
				id = t.Value(row, cols.ID)
			}
			review := ""
			if cols.Review != "" {
				review = t.Value(row, cols.Review)
			}
			report.Mismatches = append(report.Mismatches, Mismatch{
				ID:            id,
				PredDecision:  predDec.String(),
				GTDecision:    gtDec.String(),
				PredViolation: predVio.String(),
				GTViolation:   gtVio.String(),
				Review:        review,
			})
		}
	}

	report.DecisionAccuracy = float64(report.DecisionMatches) / float64(report.Total)
	report.ViolationAccuracy = float64(report.ViolationMatches) / float64(report.Total)
	if report.Unrecognized > 0 {
		slog.Warn("Scored rows contained labels outside the canonical vocabulary",
			"unrecognized_cells", report.Unrecognized)
	}
	return report, nil
}

// WriteMismatches writes the mismatch list as CSV with fixed columns,
// overwriting any prior report. When there are no mismatches nothing is
// written and the previous file, if any, is left alone.
func WriteMismatches(mismatches []Mismatch, path string) error {
	if len(mismatches) == 0 {
		slog.Info("No mismatches; skipping report", "path", path)
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create mismatch report: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("Failed to close mismatch report", "error", closeErr)
		}
	}()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "pred_decision", "gt_decision", "pred_violation", "gt_violation", "review"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write mismatch header: %w", err)
	}
	for _, m := range mismatches {
		row := []string{m.ID, m.PredDecision, m.GTDecision, m.PredViolation, m.GTViolation, m.Review}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write mismatch row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	slog.Info("Saved mismatch report", "path", path, "rows", len(mismatches))
	return nil
}
