// Copyright (C) 2025 The revlens authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/revlens/revlens/pkg/ux"
	"github.com/revlens/revlens/services/classifier"
)

// runReview classifies a single review passed as arguments, or drops into
// the interactive loop when none are given.
func runReview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	clf, err := buildClassifier(cfg)
	if err != nil {
		return err
	}

	if len(args) > 0 {
		return classifyOne(cmd.Context(), clf, locationFlag, strings.Join(args, " "))
	}
	return reviewLoop(cmd.Context(), clf)
}

// reviewLoop reads reviews from stdin until the operator quits. A bad line
// re-prompts; only EOF or an explicit quit ends the loop.
func reviewLoop(ctx context.Context, clf *classifier.Classifier) error {
	fmt.Println("Enter a review to classify ('q' or 'exit' to quit).")
	fmt.Println("Prefix with 'location | review text' to include the location.")
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("\n> ")
		input, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return nil // EOF ends the session
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "q" || input == "exit" || input == "quit" {
			return nil
		}

		location := locationFlag
		review := input
		if before, after, found := strings.Cut(input, "|"); found {
			location = strings.TrimSpace(before)
			review = strings.TrimSpace(after)
		}
		if err := classifyOne(ctx, clf, location, review); err != nil {
			ux.Error(err.Error())
		}
	}
}

func classifyOne(ctx context.Context, clf *classifier.Classifier, location, review string) error {
	spinner := ux.NewSpinner("Classifying review")
	spinner.Start()
	result, err := clf.Classify(ctx, location, review)
	spinner.Stop()
	if err != nil {
		return err
	}
	printResult(result)
	return nil
}

func printResult(result classifier.Result) {
	decision := result.Decision
	if decision == "" {
		decision = "(unknown)"
	}
	switch result.Decision {
	case "Valid":
		ux.Success("Decision: " + decision)
	case "Flagged":
		ux.Warning("Decision: " + decision)
	default:
		ux.Info("Decision: " + decision)
	}
	ux.Info("Primary Violation: " + orDash(result.PrimaryViolation))
	ux.Info("Explanation: " + orDash(result.Explanation))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
