// Copyright (C) 2025 The revlens authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package dataset

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/revlens/revlens/services/classifier"
)

// Appended output columns, in order.
var resultHeaders = []string{"Decision", "Primary Violation", "Explanation"}

// EvaluatedPath derives the output path by inserting "_evaluated" before the
// input extension: reviews.csv -> reviews_evaluated.csv.
func EvaluatedPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + "_evaluated" + ext
}

// WriteEvaluated writes the input schema plus the three result columns.
// Excel inputs produce an Excel output; every other format is written as
// CSV. results is indexed by source row; rows that were skipped at
// extraction time get blank result cells.
//
// The write is whole-file and overwrites any previous output.
func WriteEvaluated(t *Table, results map[int]classifier.Result, path string) error {
	headers := append(append([]string{}, t.Headers...), resultHeaders...)
	rows := make([][]string, 0, len(t.Rows))
	for i, row := range t.Rows {
		// Pad or clamp ragged rows to the header width.
		padded := make([]string, len(t.Headers), len(headers))
		copy(padded, row)
		if res, ok := results[i]; ok {
			padded = append(padded, res.Decision, res.PrimaryViolation, res.Explanation)
		} else {
			padded = append(padded, "", "", "")
		}
		rows = append(rows, padded)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var err error
	switch ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		err = writeExcel(headers, rows, path)
	default:
		err = writeCSV(headers, rows, path)
	}
	if err != nil {
		return err
	}
	slog.Info("Wrote evaluated output", "path", path, "rows", len(rows))
	return nil
}

func writeCSV(headers []string, rows [][]string, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("Failed to close output file", "error", closeErr)
		}
	}()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeExcel(headers []string, rows [][]string, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	write := func(rowNum int, cells []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		row := make([]interface{}, len(cells))
		for i, c := range cells {
			row[i] = c
		}
		return f.SetSheetRow(sheet, cell, &row)
	}

	if err := write(1, headers); err != nil {
		return fmt.Errorf("failed to write Excel header: %w", err)
	}
	for i, row := range rows {
		if err := write(i+2, row); err != nil {
			return fmt.Errorf("failed to write Excel row %d: %w", i+2, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save Excel output: %w", err)
	}
	return nil
}
