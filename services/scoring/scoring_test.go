// Copyright (C) 2025 The revlens authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package scoring

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revlens/revlens/services/dataset"
)

func scoreTable(rows [][]string) *dataset.Table {
	return &dataset.Table{
		Headers: []string{"id", "review", "Decision", "Primary Violation", "GT_Decision", "GT_Violation"},
		Rows:    rows,
	}
}

func defaultColsWithID() Columns {
	cols := DefaultColumns()
	cols.ID = "id"
	return cols
}

func TestEvaluate_PerfectAgreement(t *testing.T) {
	table := scoreTable([][]string{
		{"1", "great spot", "Valid", "None", "Valid", "None"},
		{"2", "BUY NOW", "Flagged", "No Advertisement", "Flagged", "No Advertisement"},
	})

	report, err := Evaluate(table, defaultColsWithID())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1.0, report.DecisionAccuracy)
	assert.Equal(t, 1.0, report.ViolationAccuracy)
	assert.Empty(t, report.Mismatches)
	assert.Zero(t, report.Unrecognized)
}

func TestEvaluate_AliasesAgree(t *testing.T) {
	// "ads" canonicalizes to "No Advertisement", so this is a match.
	table := scoreTable([][]string{
		{"1", "spam", "Flagged", "ads", "Flagged", "No Advertisement"},
	})

	report, err := Evaluate(table, defaultColsWithID())
	require.NoError(t, err)
	assert.Equal(t, 1, report.ViolationMatches)
	assert.Empty(t, report.Mismatches)
}

func TestEvaluate_ValidForcesNoneBothSides(t *testing.T) {
	// Prediction says "speculation", ground truth is blank; both sides are
	// Valid so both collapse to None.
	table := scoreTable([][]string{
		{"1", "fine visit", "Valid", "speculation", "Valid", ""},
	})

	report, err := Evaluate(table, defaultColsWithID())
	require.NoError(t, err)
	assert.Equal(t, 1, report.DecisionMatches)
	assert.Equal(t, 1, report.ViolationMatches)
	assert.Empty(t, report.Mismatches)
}

func TestEvaluate_MismatchRecorded(t *testing.T) {
	table := scoreTable([][]string{
		{"7", "went once, meh", "Flagged", "hearsay", "Flagged", "No Irrelevant Content"},
		{"8", "good", "Valid", "", "Valid", ""},
	})

	report, err := Evaluate(table, defaultColsWithID())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 2, report.DecisionMatches)
	assert.Equal(t, 1, report.ViolationMatches)

	// Mismatch list length = total - violation matches.
	require.Len(t, report.Mismatches, report.Total-report.ViolationMatches)
	m := report.Mismatches[0]
	assert.Equal(t, "7", m.ID)
	assert.Equal(t, "No Rant Without Visit", m.PredViolation)
	assert.Equal(t, "No Irrelevant Content", m.GTViolation)
	assert.Equal(t, "went once, meh", m.Review)
}

func TestEvaluate_AccuracyBounds(t *testing.T) {
	table := scoreTable([][]string{
		{"1", "a", "Valid", "", "Flagged", "ads"},
		{"2", "b", "Flagged", "promo", "Flagged", "No Advertisement"},
	})

	report, err := Evaluate(table, defaultColsWithID())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, report.DecisionAccuracy, 0.0)
	assert.LessOrEqual(t, report.DecisionAccuracy, 1.0)
	assert.GreaterOrEqual(t, report.ViolationAccuracy, 0.0)
	assert.LessOrEqual(t, report.ViolationAccuracy, 1.0)
	assert.Equal(t, 0.5, report.DecisionAccuracy)
}

func TestEvaluate_UnrecognizedCounted(t *testing.T) {
	table := scoreTable([][]string{
		{"1", "odd", "Flagged", "mystery label", "Flagged", "mystery label"},
	})

	report, err := Evaluate(table, defaultColsWithID())
	require.NoError(t, err)
	// Identical raw text still compares equal, but it is surfaced.
	assert.Equal(t, 1, report.ViolationMatches)
	assert.Equal(t, 2, report.Unrecognized)
}

func TestEvaluate_EmptyInput(t *testing.T) {
	_, err := Evaluate(scoreTable(nil), defaultColsWithID())
	assert.ErrorIs(t, err, ErrNoRows)

	_, err = Evaluate(nil, defaultColsWithID())
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestEvaluate_MissingColumn(t *testing.T) {
	table := &dataset.Table{Headers: []string{"only"}, Rows: [][]string{{"x"}}}
	_, err := Evaluate(table, DefaultColumns())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Decision")
}

func TestWriteMismatches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mismatches.csv")
	mismatches := []Mismatch{
		{ID: "1", PredDecision: "Flagged", GTDecision: "Valid",
			PredViolation: "No Advertisement", GTViolation: "None", Review: "BUY NOW"},
	}
	require.NoError(t, WriteMismatches(mismatches, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, []string{"id", "pred_decision", "gt_decision", "pred_violation", "gt_violation", "review"}, records[0])
	assert.Equal(t, "BUY NOW", records[1][5])
}

func TestWriteMismatches_EmptySkipsWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mismatches.csv")
	require.NoError(t, WriteMismatches(nil, path))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "empty mismatch list must not create a file")
}
