// Copyright (C) 2025 The revlens authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package classifier builds the policy rubric prompt, sends it to a
// text-generation backend, and extracts a structured verdict from the
// free-text response.
package classifier

// Result is one classified review.
//
// Decision and PrimaryViolation carry canonical vocabulary names whenever the
// model's text could be canonicalized, and the trimmed raw text otherwise. A
// field the parser could not find at all is the empty string; callers must
// treat a blank Decision as unknown, never as Valid.
type Result struct {
	Decision         string `json:"decision"`
	PrimaryViolation string `json:"primary_violation"`
	Explanation      string `json:"explanation"`
	RawOutput        string `json:"raw_output"`
}

// Review is one unit of driver input. Location is optional context for the
// rant-without-visit policy; Rating is clamped to [0,5] at ingestion.
type Review struct {
	Location string
	Text     string
	Rating   *int
}
