// Package ui provides the styled terminal output of the CLI.
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Color palette
	primaryColor   = lipgloss.Color("#7D56F4") // Purple
	secondaryColor = lipgloss.Color("#00D9FF") // Cyan
	successColor   = lipgloss.Color("#04B575") // Green
	errorColor     = lipgloss.Color("#FF5F87") // Pink/Red
	mutedColor     = lipgloss.Color("#626262") // Gray

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginTop(1).
			MarginBottom(1).
			PaddingLeft(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(secondaryColor).
			MarginTop(1).
			PaddingLeft(1)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	checkmark = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true).
			SetString("✓")

	cross = lipgloss.NewStyle().
		Foreground(errorColor).
		Bold(true).
		SetString("✗")

	arrow = lipgloss.NewStyle().
		Foreground(secondaryColor).
		SetString("→")

	dot = lipgloss.NewStyle().
		Foreground(mutedColor).
		SetString("•")

	stepStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	itemStyle = lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(lipgloss.Color("#FAFAFA"))
)

var verbose bool

// SetVerbose enables verbose output.
func SetVerbose(v bool) {
	verbose = v
}

// IsVerbose checks if verbose output is enabled.
func IsVerbose() bool {
	return verbose
}

// PrintTitle prints a major title (for app name or major sections)
func PrintTitle(title string) {
	fmt.Println(titleStyle.Render("╭─ " + title + " ─╮"))
}

// PrintHeader prints a section header
func PrintHeader(title string) {
	fmt.Println(headerStyle.Render("\n▸ " + title))
}

// PrintStep prints a step with indentation
func PrintStep(step string) {
	fmt.Println(stepStyle.Render(arrow.String() + " " + step))
}

// PrintItem prints an item in a list
func PrintItem(item string) {
	fmt.Println(itemStyle.Render(dot.String() + " " + item))
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Println(stepStyle.Render(checkmark.String() + " " + successStyle.Render(message)))
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Println(stepStyle.Render(cross.String() + " " + errorStyle.Render(message)))
}

// PrintInfo prints an info message
func PrintInfo(message string) {
	fmt.Println(stepStyle.Render(infoStyle.Render(message)))
}

// PrintKeyValue prints a key-value pair with nice formatting
func PrintKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().
		Foreground(secondaryColor).
		Bold(true)
	fmt.Println(stepStyle.Render(keyStyle.Render(key+":") + " " + value))
}

// PrintSeparator prints a visual separator
func PrintSeparator() {
	separator := lipgloss.NewStyle().
		Foreground(mutedColor).
		Render("─────────────────────────────────────────────")
	fmt.Println(separator)
}
