// Copyright (C) 2025 The revlens authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package classifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/prompts"

	"github.com/revlens/revlens/services/labels"
	"github.com/revlens/revlens/services/llm"
)

// DefaultPromptTemplate is the policy rubric sent with every review. The
// {{.location}} slot carries the optional context (location, star rating)
// and collapses to nothing when neither is supplied.
const DefaultPromptTemplate = `You are an expert in identifying trustworthy and policy-compliant location reviews.

{{.location}}Review to Evaluate:
{{.review}}

Policies to Enforce:
  1.  No Advertisement: Reviews should not contain promotional content, discount offers, or links.
  2.  No Irrelevant Content: Reviews should focus on the experience at the location, not other matters.
  3.  No Rant Without Visit: Rants or complaints must come from someone who actually visited, not from speculation or hearsay.

Instructions:
  - First, determine whether the review is Valid or Flagged.
  - If the review is flagged, identify which single policy it violated the most (choose the strongest violation).
  - Provide a brief explanation (1 to 2 sentences) justifying your decision.

Output Format:
- Decision: Valid / Flagged
- Primary Violation (if flagged): [Policy Name]
- Explanation: [Short reasoning]

Example Output:
- Decision: Flagged
- Primary Violation: No Advertisement
- Explanation: The review contains a promotional link to a discount website, which violates the no advertisement policy.`

// Config carries everything a Classifier needs beyond the backend client.
// There is deliberately no package-level state: the prompt and parameters
// live on the constructed Classifier so tests can substitute both.
type Config struct {
	// PromptTemplate overrides DefaultPromptTemplate. It must reference
	// {{.review}} and may reference {{.location}}.
	PromptTemplate string

	// Params are the sampling parameters passed through on every call.
	Params llm.GenerationParams
}

// Classifier sends one review at a time to a text-generation backend and
// parses the verdict out of the response. No retries, no streaming; the
// single Generate call blocks until the model answers.
type Classifier struct {
	client llm.Client
	prompt prompts.PromptTemplate
	params llm.GenerationParams
}

// New constructs a Classifier around an injected backend client.
func New(client llm.Client, cfg Config) (*Classifier, error) {
	if client == nil {
		return nil, errors.New("client must not be nil")
	}
	tmpl := cfg.PromptTemplate
	if tmpl == "" {
		tmpl = DefaultPromptTemplate
	}
	if !strings.Contains(tmpl, "{{.review}}") {
		return nil, errors.New("prompt template must reference {{.review}}")
	}
	return &Classifier{
		client: client,
		prompt: prompts.NewPromptTemplate(tmpl, []string{"location", "review"}),
		params: cfg.Params,
	}, nil
}

// Classify evaluates a single review and returns the parsed verdict.
//
// Field extraction is best effort: a missing field comes back as an empty
// string, never an error. The Valid-forces-None invariant is applied before
// returning, so a Result with Decision "Valid" always reports violation
// "None" regardless of what the model wrote.
func (c *Classifier) Classify(ctx context.Context, location, review string) (Result, error) {
	return c.ClassifyReview(ctx, Review{Location: location, Text: review})
}

// ClassifyReview evaluates a structured review, folding the optional
// location and star rating into the prompt context. A low rating on a
// rant-style review gives the model signal for the visit policy.
func (c *Classifier) ClassifyReview(ctx context.Context, rev Review) (Result, error) {
	var preamble strings.Builder
	if loc := strings.TrimSpace(rev.Location); loc != "" {
		fmt.Fprintf(&preamble, "Location Being Reviewed:\n%s\n\n", loc)
	}
	if rev.Rating != nil {
		fmt.Fprintf(&preamble, "Star Rating Given by Reviewer: %d out of 5\n\n", *rev.Rating)
	}
	prompt, err := c.prompt.Format(map[string]any{
		"location": preamble.String(),
		"review":   rev.Text,
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to format prompt: %w", err)
	}

	raw, err := c.client.Generate(ctx, prompt, c.params)
	if err != nil {
		return Result{}, fmt.Errorf("generation failed: %w", err)
	}

	result := resultFromRaw(raw)
	slog.Debug("Classified review",
		"decision", result.Decision,
		"violation", result.PrimaryViolation)
	return result, nil
}

// resultFromRaw parses and canonicalizes a raw model response.
func resultFromRaw(raw string) Result {
	fields := parseResponse(raw)

	result := Result{
		Decision:         fields.decision,
		PrimaryViolation: fields.violation,
		Explanation:      fields.explanation,
		RawOutput:        raw,
	}

	// A blank decision stays blank: absent is unknown, not Valid.
	decision := labels.CanonicalDecision(fields.decision)
	if decision.Known {
		result.Decision = decision.Name
	}

	switch {
	case decision.Known && decision.Name == labels.DecisionValid:
		// Valid forces None no matter what the raw text said.
		result.PrimaryViolation = labels.ViolationNone
	case fields.violation != "":
		if v := labels.CanonicalViolation(fields.violation); v.Known {
			result.PrimaryViolation = v.Name
		}
	}
	return result
}
