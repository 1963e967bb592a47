package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Task bars: bold cyan
	colorBar = color.New(color.FgCyan, color.Bold)

	// Subtasks: plain cyan
	colorSubtask = color.New(color.FgCyan)

	// Late tasks: red to stand out
	colorLate = color.New(color.FgRed, color.Bold)

	// Completed tasks: green
	colorDone = color.New(color.FgGreen)

	// Warnings and advisor alerts: yellow
	colorWarn = color.New(color.FgYellow)

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

// formatBar formats text for a top-level task.
func formatBar(s string) string {
	return colorBar.Sprint(s)
}

// formatSubtask formats text for a subtask.
func formatSubtask(s string) string {
	return colorSubtask.Sprint(s)
}

// formatLate formats text for a late task.
func formatLate(s string) string {
	return colorLate.Sprint(s)
}

// formatDone formats text for a completed task.
func formatDone(s string) string {
	return colorDone.Sprint(s)
}

// formatWarn formats text for warnings and alerts.
func formatWarn(s string) string {
	return colorWarn.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
