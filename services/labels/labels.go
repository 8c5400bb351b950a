// Copyright (C) 2025 The revlens authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package labels canonicalizes free-text policy labels into a fixed vocabulary.
//
// Both the model output and human ground-truth columns arrive as loose text
// ("ads", "off-topic", "FLAGGED because ..."). Scoring is only meaningful when
// both sides are mapped onto the same closed set of names, so everything in
// this package funnels into two vocabularies: the decision ({Valid, Flagged})
// and the violated policy ({No Advertisement, No Irrelevant Content,
// No Rant Without Visit, None}).
//
// Text that cannot be mapped is NOT silently passed through as if it were a
// canonical name. It is preserved as an Unrecognized label and callers decide
// how it participates in equality. See Label.
package labels

import "strings"

// Canonical decision names.
const (
	DecisionValid   = "Valid"
	DecisionFlagged = "Flagged"
)

// Canonical violation names.
const (
	ViolationAdvertisement = "No Advertisement"
	ViolationIrrelevant    = "No Irrelevant Content"
	ViolationRant          = "No Rant Without Visit"
	ViolationNone          = "None"
)

// canonicalDecisions maps normalized text to canonical decision names.
var canonicalDecisions = map[string]string{
	"valid":   DecisionValid,
	"flagged": DecisionFlagged,
}

// canonicalViolations maps normalized text to the canonical violation set.
var canonicalViolations = map[string]string{
	"no advertisement":      ViolationAdvertisement,
	"no irrelevant content": ViolationIrrelevant,
	"no rant without visit": ViolationRant,
	"none":                  ViolationNone,
}

// violationAliases maps known loose phrasings onto canonical names. Every
// alias maps to exactly one canonical name.
var violationAliases = map[string]string{
	"advertising":        ViolationAdvertisement,
	"advertisement":      ViolationAdvertisement,
	"ads":                ViolationAdvertisement,
	"promo":              ViolationAdvertisement,
	"promotion":          ViolationAdvertisement,
	"irrelevant":         ViolationIrrelevant,
	"off-topic":          ViolationIrrelevant,
	"rant without visit": ViolationRant,
	"speculation":        ViolationRant,
	"hearsay":            ViolationRant,
	"none":               ViolationNone,
	"":                   ViolationNone,
}

// Label is the result of canonicalizing a free-text label.
//
// A Known label carries one of the canonical vocabulary names. An
// Unrecognized label preserves the original trimmed text so it is never
// mistaken for a vocabulary member; whether two Unrecognized labels compare
// equal is a caller decision, made explicit through Equal and EqualStrict.
type Label struct {
	// Name is the canonical name when Known, or the original trimmed text
	// when not.
	Name string

	// Known reports whether Name is a member of the canonical vocabulary.
	Known bool
}

// Known wraps a canonical vocabulary name.
func Known(name string) Label {
	return Label{Name: name, Known: true}
}

// Unrecognized wraps text that could not be canonicalized.
func Unrecognized(raw string) Label {
	return Label{Name: strings.TrimSpace(raw), Known: false}
}

// String returns the canonical name, or the preserved raw text for
// unrecognized labels.
func (l Label) String() string { return l.Name }

// Equal reports whether two labels carry the same name. Unrecognized text
// participates byte-for-byte, which mirrors how a plain string comparison of
// the raw columns would behave.
func (l Label) Equal(other Label) bool {
	return l.Name == other.Name
}

// EqualStrict is like Equal but additionally requires both labels to be
// Known. An Unrecognized label never strictly matches anything, including
// identical raw text; use this when leaked raw text must not inflate match
// counts.
func (l Label) EqualStrict(other Label) bool {
	return l.Known && other.Known && l.Name == other.Name
}

// normalize trims, lowercases, and collapses internal whitespace runs to
// single spaces.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}

// CanonicalDecision maps free-text onto {Valid, Flagged}.
//
// Model output routinely arrives with trailing prose ("Valid - the review
// describes a real visit"), so prefix matching runs before the table lookup.
// Unmatched text is preserved as Unrecognized rather than raised as an error;
// downstream comparison decides how it counts.
func CanonicalDecision(s string) Label {
	key := normalize(s)
	if strings.HasPrefix(key, "valid") {
		return Known(DecisionValid)
	}
	if strings.HasPrefix(key, "flag") {
		return Known(DecisionFlagged)
	}
	if name, ok := canonicalDecisions[key]; ok {
		return Known(name)
	}
	return Unrecognized(s)
}

// CanonicalViolation maps free-text onto the canonical violation set.
//
// Resolution order: exact canonical name, then the alias table, then
// substring heuristics in fixed priority (advertisement outranks irrelevant
// content outranks rant-without-visit), then empty text collapses to None.
// Anything else is preserved as Unrecognized.
func CanonicalViolation(s string) Label {
	key := normalize(s)
	if name, ok := canonicalViolations[key]; ok {
		return Known(name)
	}
	if name, ok := violationAliases[key]; ok {
		return Known(name)
	}
	switch {
	case strings.Contains(key, "advert") || strings.Contains(key, "promo"):
		return Known(ViolationAdvertisement)
	case strings.Contains(key, "irrelev") || strings.Contains(key, "offtopic"):
		return Known(ViolationIrrelevant)
	case strings.Contains(key, "visit") || strings.Contains(key, "hearsay") ||
		strings.Contains(key, "speculat") || strings.Contains(key, "rant"):
		return Known(ViolationRant)
	}
	if key == "" {
		return Known(ViolationNone)
	}
	return Unrecognized(s)
}

// ApplyValidOverride forces the violation to None whenever the paired
// decision is Valid. A valid review cannot carry a violation no matter what
// the raw text said; both the driver and the scorer route through this before
// comparing or writing anything.
func ApplyValidOverride(decision, violation Label) Label {
	if decision.Known && decision.Name == DecisionValid {
		return Known(ViolationNone)
	}
	return violation
}
