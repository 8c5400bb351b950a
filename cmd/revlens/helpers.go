// Copyright (C) 2025 The revlens authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/revlens/revlens/services/classifier"
	"github.com/revlens/revlens/services/llm"
)

// buildClassifier wires the configured backend into a Classifier.
func buildClassifier(cfg appConfig) (*classifier.Classifier, error) {
	client, err := llm.NewClient()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM backend: %w", err)
	}
	return classifier.New(client, classifier.Config{
		PromptTemplate: cfg.PromptTemplate,
		Params:         cfg.Generation.params(),
	})
}

// ask prompts for one line of input, returning the default when the
// operator just presses Enter.
func ask(r *bufio.Reader, msg, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("%s [%s]: ", msg, defaultVal)
	} else {
		fmt.Printf("%s: ", msg)
	}
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return defaultVal
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return defaultVal
	}
	return line
}
