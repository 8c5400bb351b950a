// Copyright (C) 2025 The revlens authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package dataset reads review batches from tabular files and writes the
// evaluated output next to them. Every supported format funnels into the
// same Table shape so the driver and scorer never care where rows came from.
package dataset

import "strings"

// Table is a uniform tabular representation: a header row plus string cells.
type Table struct {
	Headers []string
	Rows    [][]string
}

// index returns the position of a header, matched case-insensitively, or -1.
func (t *Table) index(header string) int {
	for i, h := range t.Headers {
		if strings.EqualFold(strings.TrimSpace(h), header) {
			return i
		}
	}
	return -1
}

// Value returns the cell under the named header for a row, or "" when the
// header is unknown or the row is ragged.
func (t *Table) Value(row []string, header string) string {
	i := t.index(header)
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// HasHeader reports whether the named column exists.
func (t *Table) HasHeader(header string) bool {
	return t.index(header) >= 0
}
