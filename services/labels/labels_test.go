// Copyright (C) 2025 The revlens authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalDecision(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      string
		wantKnown bool
	}{
		{"exact valid", "Valid", DecisionValid, true},
		{"exact flagged", "Flagged", DecisionFlagged, true},
		{"lowercase", "valid", DecisionValid, true},
		{"valid prefix with prose", "Valid - review describes a real visit", DecisionValid, true},
		{"flag prefix", "FLAG: promotional content", DecisionFlagged, true},
		{"flagged shouting", "FLAGGED", DecisionFlagged, true},
		{"surrounding whitespace", "  valid  ", DecisionValid, true},
		{"internal whitespace", "valid\t\tdecision", DecisionValid, true},
		{"unrecognized", "maybe?", "maybe?", false},
		{"empty", "", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CanonicalDecision(tc.input)
			assert.Equal(t, tc.want, got.Name)
			assert.Equal(t, tc.wantKnown, got.Known)
		})
	}
}

func TestCanonicalViolation_Aliases(t *testing.T) {
	// Every alias maps to exactly one canonical name.
	for alias, want := range violationAliases {
		got := CanonicalViolation(alias)
		assert.True(t, got.Known, "alias %q should resolve", alias)
		assert.Equal(t, want, got.Name, "alias %q", alias)
	}
}

func TestCanonicalViolation_Idempotent(t *testing.T) {
	canonical := []string{
		ViolationAdvertisement,
		ViolationIrrelevant,
		ViolationRant,
		ViolationNone,
	}
	for _, name := range canonical {
		got := CanonicalViolation(name)
		assert.True(t, got.Known)
		assert.Equal(t, name, got.Name)

		// A second pass must not change anything.
		again := CanonicalViolation(got.Name)
		assert.Equal(t, got, again)
	}
}

func TestCanonicalViolation_SubstringHeuristics(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"contains advertising language", ViolationAdvertisement},
		{"promotes a discount code", ViolationAdvertisement},
		{"mostly irrelevant chatter", ViolationIrrelevant},
		{"offtopic", ViolationIrrelevant},
		{"never visited the place", ViolationRant},
		{"pure hearsay from a friend", ViolationRant},
		{"speculative complaint", ViolationRant},
		{"angry rant", ViolationRant},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := CanonicalViolation(tc.input)
			assert.True(t, got.Known)
			assert.Equal(t, tc.want, got.Name)
		})
	}
}

func TestCanonicalViolation_PriorityOrder(t *testing.T) {
	// "advert" outranks the rant heuristics even when both substrings appear.
	got := CanonicalViolation("rant about advertisements")
	assert.Equal(t, ViolationAdvertisement, got.Name)
}

func TestCanonicalViolation_Unrecognized(t *testing.T) {
	got := CanonicalViolation("  something else entirely  ")
	assert.False(t, got.Known)
	assert.Equal(t, "something else entirely", got.Name)

	empty := CanonicalViolation("   ")
	assert.True(t, empty.Known)
	assert.Equal(t, ViolationNone, empty.Name)
}

func TestApplyValidOverride(t *testing.T) {
	valid := CanonicalDecision("Valid")
	flagged := CanonicalDecision("Flagged")

	// Valid forces None regardless of the raw violation text.
	got := ApplyValidOverride(valid, CanonicalViolation("speculation"))
	assert.Equal(t, Known(ViolationNone), got)

	got = ApplyValidOverride(valid, Unrecognized("garbage"))
	assert.Equal(t, Known(ViolationNone), got)

	// Flagged leaves the violation alone.
	got = ApplyValidOverride(flagged, CanonicalViolation("ads"))
	assert.Equal(t, Known(ViolationAdvertisement), got)

	// An unrecognized decision is not Valid.
	got = ApplyValidOverride(Unrecognized("maybe"), CanonicalViolation("ads"))
	assert.Equal(t, Known(ViolationAdvertisement), got)
}

func TestLabelEquality(t *testing.T) {
	a := Known(ViolationNone)
	b := Known(ViolationNone)
	assert.True(t, a.Equal(b))
	assert.True(t, a.EqualStrict(b))

	u1 := Unrecognized("mystery")
	u2 := Unrecognized("mystery")
	assert.True(t, u1.Equal(u2))
	assert.False(t, u1.EqualStrict(u2), "unrecognized text never strictly matches")
	assert.False(t, u1.EqualStrict(a))
}
