package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Busy: red, the cell you care about
	colorBusy = color.New(color.FgRed, color.Bold)

	// Tentative: yellow, unconfirmed
	colorTentative = color.New(color.FgYellow)

	// Free: green
	colorFree = color.New(color.FgGreen)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// formatBusy formats text for busy intervals.
func formatBusy(s string) string {
	return colorBusy.Sprint(s)
}

// formatTentative formats text for tentative intervals.
func formatTentative(s string) string {
	return colorTentative.Sprint(s)
}

// formatFree formats text for free resources.
func formatFree(s string) string {
	return colorFree.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
