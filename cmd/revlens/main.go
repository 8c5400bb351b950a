// Copyright (C) 2025 The revlens authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"os"

	"github.com/revlens/revlens/pkg/logging"
)

var appLogger *logging.Logger

// setupLogging builds the process logger from the global flags and installs
// it as the slog default. Called from the root command's PersistentPreRunE.
func setupLogging() error {
	appLogger = logging.New(logging.Config{
		Level:   logging.ParseLevel(logLevel),
		Service: "revlens",
		LogDir:  logDir,
	})
	appLogger.Install()
	return nil
}

func main() {
	err := rootCmd.Execute()
	if appLogger != nil {
		_ = appLogger.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}
