// Copyright (C) 2025 The revlens authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package classifier

import "strings"

// rawFields holds the three extracted lines before canonicalization.
type rawFields struct {
	decision    string
	violation   string
	explanation string
}

// parseResponse scans the model's free text line by line for the literal
// tokens "decision:", "primary violation", and "explanation:". Matching is a
// case-insensitive substring check, so bulleted or bolded lines
// ("• Decision: Flagged", "**Decision:** Valid") still resolve. The first
// line matching each token wins. A token that never appears yields an empty
// field; a fully malformed response parses successfully with all fields
// blank.
func parseResponse(raw string) rawFields {
	var f rawFields
	for _, line := range strings.Split(raw, "\n") {
		lower := strings.ToLower(line)
		switch {
		case f.decision == "" && strings.Contains(lower, "decision:"):
			f.decision = valueAfter(line, lower, "decision:")
		case f.violation == "" && strings.Contains(lower, "primary violation"):
			f.violation = valueAfter(line, lower, "primary violation")
		case f.explanation == "" && strings.Contains(lower, "explanation:"):
			f.explanation = valueAfter(line, lower, "explanation:")
		}
	}
	return f
}

// valueAfter extracts the field value following a matched token. The rubric
// asks for "Primary Violation (if flagged): ..." so anything between the
// token and the next colon is discarded along with the colon itself.
func valueAfter(line, lower, token string) string {
	rest := line[strings.Index(lower, token)+len(token):]
	if !strings.HasSuffix(token, ":") {
		if i := strings.Index(rest, ":"); i >= 0 {
			rest = rest[i+1:]
		}
	}
	rest = strings.TrimSpace(rest)
	rest = strings.Trim(rest, "*_")
	rest = strings.TrimLeft(rest, "- ")
	// Models occasionally echo the placeholder brackets from the rubric.
	rest = strings.TrimPrefix(rest, "[")
	rest = strings.TrimSuffix(rest, "]")
	return strings.TrimSpace(rest)
}
