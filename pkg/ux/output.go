// Copyright (C) 2025 The revlens authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ux provides terminal output styling for the revlens CLI.
package ux

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// revlens palette
var (
	ColorAccent  = lipgloss.Color("#7C6FF0") // violet - titles, highlights
	ColorSuccess = lipgloss.Color("#3FCF8E") // green for success
	ColorWarning = lipgloss.Color("#F4D03F") // amber for warnings
	ColorError   = lipgloss.Color("#E74C3C") // red for errors
	ColorMuted   = lipgloss.Color("#6B7280") // gray for secondary text
)

// Styles provides pre-configured lipgloss styles.
var Styles = struct {
	Title     lipgloss.Style
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Highlight lipgloss.Style
	Box       lipgloss.Style
}{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(ColorAccent),
	Bold:      lipgloss.NewStyle().Bold(true),
	Muted:     lipgloss.NewStyle().Foreground(ColorMuted),
	Success:   lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning:   lipgloss.NewStyle().Foreground(ColorWarning),
	Error:     lipgloss.NewStyle().Foreground(ColorError),
	Highlight: lipgloss.NewStyle().Foreground(ColorAccent).Bold(true),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorAccent).
		Padding(0, 1),
}

// plain is true when stdout is not a terminal; styling and spinners are
// suppressed so piped output stays clean.
var plain = !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd())

// Interactive reports whether stdout is a terminal.
func Interactive() bool { return !plain }

// Title prints a styled section title.
func Title(text string) {
	if plain {
		fmt.Println(text)
		return
	}
	fmt.Println(Styles.Title.Render(text))
}

// Success prints a success message with a checkmark.
func Success(text string) {
	if plain {
		fmt.Printf("OK: %s\n", text)
		return
	}
	fmt.Printf("%s %s\n", Styles.Success.Render("✓"), Styles.Success.Render(text))
}

// Warning prints a warning message.
func Warning(text string) {
	if plain {
		fmt.Fprintf(os.Stderr, "WARN: %s\n", text)
		return
	}
	fmt.Printf("%s %s\n", Styles.Warning.Render("⚠"), Styles.Warning.Render(text))
}

// Error prints an error message.
func Error(text string) {
	if plain {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", text)
		return
	}
	fmt.Printf("%s %s\n", Styles.Error.Render("✗"), Styles.Error.Render(text))
}

// Info prints an informational message.
func Info(text string) {
	if plain {
		fmt.Println(text)
		return
	}
	fmt.Printf("%s %s\n", Styles.Muted.Render("│"), text)
}

// Muted prints secondary text.
func Muted(text string) {
	if plain {
		fmt.Println(text)
		return
	}
	fmt.Println(Styles.Muted.Render(text))
}

// Box prints content in a rounded box with a title line.
func Box(title, content string) {
	if plain {
		fmt.Printf("%s: %s\n", title, content)
		return
	}
	fmt.Println(Styles.Box.Width(72).Render(Styles.Title.Render(title) + "\n" + content))
}
