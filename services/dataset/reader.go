// Copyright (C) 2025 The revlens authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package dataset

import (
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Read loads a tabular file into a Table, dispatching on the extension.
//
// Supported: .csv, .xlsx, .xlsm, .xltx, .xltm, .json, .xml. Legacy Excel
// formats (.xls, .xlsb, .ods) are rejected with a conversion hint since no
// maintained Go reader exists for them; everything else is rejected naming
// the extension.
func Read(path string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("input file not found: %s", path)
	}
	ext := strings.ToLower(filepath.Ext(path))
	slog.Debug("Reading input file", "path", path, "format", ext)
	switch ext {
	case ".csv":
		return readCSV(path)
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return readExcel(path)
	case ".xls", ".xlsb", ".ods":
		return nil, fmt.Errorf("legacy spreadsheet format %q is not supported; convert the file to .xlsx or .csv", ext)
	case ".json":
		return readJSON(path)
	case ".xml":
		return readXML(path)
	default:
		return nil, fmt.Errorf("unsupported file extension %q", ext)
	}
}

func readCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file %s has no header row", path)
	}
	// Spreadsheet exports routinely lead with a UTF-8 BOM.
	records[0][0] = strings.TrimPrefix(records[0][0], "\uFEFF")
	return &Table{Headers: records[0], Rows: records[1:]}, nil
}

func readExcel(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("Excel sheet %q is empty", sheets[0])
	}
	slog.Debug("Read Excel sheet", "sheet", sheets[0], "rows", len(rows)-1)
	return &Table{Headers: rows[0], Rows: rows[1:]}, nil
}

// readJSON accepts an array of flat objects. Column order is the sorted
// union of keys since JSON objects carry no ordering.
func readJSON(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}
	var objects []map[string]any
	if err := json.Unmarshal(data, &objects); err != nil {
		return nil, fmt.Errorf("failed to parse JSON file (want an array of objects): %w", err)
	}

	keySet := make(map[string]struct{})
	for _, obj := range objects {
		for k := range obj {
			keySet[k] = struct{}{}
		}
	}
	headers := make([]string, 0, len(keySet))
	for k := range keySet {
		headers = append(headers, k)
	}
	sort.Strings(headers)

	table := &Table{Headers: headers}
	for _, obj := range objects {
		row := make([]string, len(headers))
		for i, k := range headers {
			row[i] = stringify(obj[k])
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		// Whole numbers print without the trailing .0 JSON decoding adds.
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	}
}

// readXML treats the document as a root element wrapping repeated record
// elements, each with flat child fields:
//
//	<reviews><review><text>...</text><rating>4</rating></review>...</reviews>
func readXML(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open XML file: %w", err)
	}
	defer f.Close()

	type record map[string]string
	var records []record
	headerOrder := []string{}
	seen := map[string]struct{}{}

	decoder := xml.NewDecoder(f)
	depth := 0
	var current record
	var field string
	var value strings.Builder

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse XML file: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch depth {
			case 2:
				current = record{}
			case 3:
				field = t.Name.Local
				value.Reset()
			}
		case xml.CharData:
			if depth == 3 {
				value.Write(t)
			}
		case xml.EndElement:
			switch depth {
			case 3:
				if current != nil {
					current[field] = strings.TrimSpace(value.String())
					if _, ok := seen[field]; !ok {
						seen[field] = struct{}{}
						headerOrder = append(headerOrder, field)
					}
				}
			case 2:
				if current != nil {
					records = append(records, current)
					current = nil
				}
			}
			depth--
		}
	}

	table := &Table{Headers: headerOrder}
	for _, rec := range records {
		row := make([]string, len(headerOrder))
		for i, h := range headerOrder {
			row[i] = rec[h]
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
