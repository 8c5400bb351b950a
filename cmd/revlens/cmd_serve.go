// Copyright (C) 2025 The revlens authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"github.com/spf13/cobra"

	"github.com/revlens/revlens/services/server"
)

// runServe exposes the classifier over HTTP until interrupted.
func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	clf, err := buildClassifier(cfg)
	if err != nil {
		return err
	}
	return server.New(clf).Run(serveAddr)
}
