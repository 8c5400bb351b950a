// Copyright (C) 2025 The revlens authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package dataset

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/revlens/revlens/services/classifier"
)

// ColumnMapping names the input columns the driver reads from. Empty fields
// are auto-detected; Location and Rating are optional and stay empty when no
// candidate header exists.
type ColumnMapping struct {
	Review   string `yaml:"review"`
	Location string `yaml:"location"`
	Rating   string `yaml:"rating"`
}

// Candidate header names, checked in order, case-insensitively.
var (
	reviewCandidates   = []string{"review", "review_text", "text", "comment", "content", "body"}
	locationCandidates = []string{"location", "place", "business", "business_name", "venue"}
	ratingCandidates   = []string{"rating", "stars", "score"}
)

// ResolveColumns fills in missing mapping entries by scanning the table
// headers. An explicitly named column that does not exist is a terminal
// error; an undetectable review column is too, since nothing can run without
// it.
func ResolveColumns(t *Table, mapping ColumnMapping) (ColumnMapping, error) {
	resolved := mapping

	if resolved.Review != "" && !t.HasHeader(resolved.Review) {
		return resolved, fmt.Errorf("review column %q not found in headers %v", resolved.Review, t.Headers)
	}
	if resolved.Location != "" && !t.HasHeader(resolved.Location) {
		return resolved, fmt.Errorf("location column %q not found in headers %v", resolved.Location, t.Headers)
	}
	if resolved.Rating != "" && !t.HasHeader(resolved.Rating) {
		return resolved, fmt.Errorf("rating column %q not found in headers %v", resolved.Rating, t.Headers)
	}

	if resolved.Review == "" {
		resolved.Review = detect(t, reviewCandidates)
		if resolved.Review == "" {
			return resolved, fmt.Errorf("could not detect a review column in headers %v; name one explicitly", t.Headers)
		}
	}
	if resolved.Location == "" {
		resolved.Location = detect(t, locationCandidates)
	}
	if resolved.Rating == "" {
		resolved.Rating = detect(t, ratingCandidates)
	}

	slog.Debug("Resolved input columns",
		"review", resolved.Review,
		"location", resolved.Location,
		"rating", resolved.Rating)
	return resolved, nil
}

func detect(t *Table, candidates []string) string {
	for _, name := range candidates {
		if t.HasHeader(name) {
			return name
		}
	}
	return ""
}

// Reviews extracts driver input from a table. Rows with blank review text
// are dropped; non-numeric or missing ratings are dropped (the row stays),
// and numeric ratings are clamped into [0,5].
//
// The returned index slice maps each Review back to its source row so
// results can be written alongside the original columns.
func Reviews(t *Table, mapping ColumnMapping) ([]classifier.Review, []int) {
	var out []classifier.Review
	var rowIdx []int
	for i, row := range t.Rows {
		text := strings.TrimSpace(t.Value(row, mapping.Review))
		if text == "" {
			continue
		}
		rev := classifier.Review{Text: text}
		if mapping.Location != "" {
			rev.Location = strings.TrimSpace(t.Value(row, mapping.Location))
		}
		if mapping.Rating != "" {
			if r, ok := parseRating(t.Value(row, mapping.Rating)); ok {
				rev.Rating = &r
			}
		}
		out = append(out, rev)
		rowIdx = append(rowIdx, i)
	}
	return out, rowIdx
}

// parseRating coerces a cell to an integer rating clamped into [0,5].
func parseRating(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	r := int(math.Round(f))
	if r < 0 {
		r = 0
	}
	if r > 5 {
		r = 5
	}
	return r, true
}
