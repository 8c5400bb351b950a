// Copyright (C) 2025 The revlens authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	configPath    string
	logLevel      string
	logDir        string
	reviewColumn  string
	locationFlag  string
	serveAddr     string
	mismatchPath  string
	scoreIDColumn string
	noPrompt      bool

	rootCmd = &cobra.Command{
		Use:   "revlens",
		Short: "Classify location reviews against content policies with a local LLM",
		Long: `revlens sends location reviews to a locally hosted language model for
policy classification (Valid/Flagged plus the violated policy), supports
batch files, and scores predictions against ground-truth labels.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging()
		},
	}

	reviewCmd = &cobra.Command{
		Use:   "review [review text]",
		Short: "Classify a single review, or start an interactive loop",
		Args:  cobra.ArbitraryArgs,
		RunE:  runReview, // Defined in cmd_review.go
	}

	batchCmd = &cobra.Command{
		Use:   "batch <file>",
		Short: "Classify every review in a CSV/Excel/JSON/XML file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch, // Defined in cmd_batch.go
	}

	watchCmd = &cobra.Command{
		Use:   "watch <directory>",
		Short: "Watch a directory and classify data files as they appear",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch, // Defined in cmd_watch.go
	}

	scoreCmd = &cobra.Command{
		Use:   "score <file>",
		Short: "Compare predicted labels against ground truth and report accuracy",
		Args:  cobra.ExactArgs(1),
		RunE:  runScore, // Defined in cmd_score.go
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the classifier over HTTP",
		RunE:  runServe, // Defined in cmd_serve.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug/info/warn/error)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Directory for JSON log files (disabled when empty)")

	reviewCmd.Flags().StringVar(&locationFlag, "location", "", "Location being reviewed (optional context)")

	batchCmd.Flags().StringVar(&reviewColumn, "review-column", "", "Name of the review text column (auto-detected when empty)")
	watchCmd.Flags().StringVar(&reviewColumn, "review-column", "", "Name of the review text column (auto-detected when empty)")

	scoreCmd.Flags().StringVar(&mismatchPath, "mismatch-file", "", "Mismatch report path (default mismatches.csv)")
	scoreCmd.Flags().StringVar(&scoreIDColumn, "id-column", "", "Optional row identifier column")
	scoreCmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "Use default column names without asking")

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")

	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(serveCmd)
}
