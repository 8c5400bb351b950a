// Copyright (C) 2025 The revlens authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRead_CSV(t *testing.T) {
	path := writeTemp(t, "reviews.csv",
		"location,review,rating\n"+
			"Cafe Luna,Great espresso,5\n"+
			"Cafe Luna,never been but heard it is bad,1\n")

	table, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"location", "review", "rating"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Great espresso", table.Value(table.Rows[0], "review"))
}

func TestRead_CSVWithBOM(t *testing.T) {
	path := writeTemp(t, "bom.csv", "\uFEFFreview,rating\nok place,3\n")

	table, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "review", table.Headers[0])
}

func TestRead_JSON(t *testing.T) {
	path := writeTemp(t, "reviews.json",
		`[{"review":"Nice spot","rating":4},{"review":"Spam link http://x","rating":1,"location":"Pier 9"}]`)

	table, err := Read(path)
	require.NoError(t, err)
	// Headers are the sorted union of keys.
	assert.Equal(t, []string{"location", "rating", "review"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Nice spot", table.Value(table.Rows[0], "review"))
	assert.Equal(t, "4", table.Value(table.Rows[0], "rating"))
	assert.Equal(t, "Pier 9", table.Value(table.Rows[1], "location"))
}

func TestRead_XML(t *testing.T) {
	path := writeTemp(t, "reviews.xml",
		`<reviews>
			<review><text>Lovely garden</text><rating>5</rating></review>
			<review><text>BUY NOW discount inside</text><rating>2</rating></review>
		</reviews>`)

	table, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"text", "rating"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Lovely garden", table.Value(table.Rows[0], "text"))
	assert.Equal(t, "2", table.Value(table.Rows[1], "rating"))
}

func TestRead_TruncatedXML(t *testing.T) {
	// A file cut off mid-record must be rejected, not returned as a
	// shorter table.
	path := writeTemp(t, "truncated.xml",
		`<reviews>
			<review><text>Lovely garden</text><rating>5</rating></review>
			<review><text>BUY NOW disc`)

	_, err := Read(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse XML file")
}

func TestRead_UnsupportedExtension(t *testing.T) {
	path := writeTemp(t, "reviews.parquet", "binary")
	_, err := Read(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".parquet")
}

func TestRead_LegacyExcelRejected(t *testing.T) {
	path := writeTemp(t, "reviews.xls", "old binary format")
	_, err := Read(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".xls")
	assert.Contains(t, err.Error(), "convert")
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
