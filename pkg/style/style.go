// Package style centralizes terminal styling for ksync's CLI output.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Colors shared by all styles
var (
	SuccessColor = lipgloss.Color("2")
	ErrorColor   = lipgloss.Color("1")
	WarningColor = lipgloss.Color("3")
	HeadingColor = lipgloss.Color("6")
	MutedColor   = lipgloss.Color("8")
)

// Base styles
var (
	HeadingStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	PathStyle = lipgloss.NewStyle().
			Italic(true)
)

// IsTerminal reports whether stdout is a TTY; plain output is used when it
// is not (pipes, CI).
func IsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// Render applies st only when writing to a terminal.
func Render(st lipgloss.Style, text string) string {
	if !IsTerminal() {
		return text
	}
	return st.Render(text)
}

// Success formats a success message.
func Success(text string) string { return Render(SuccessStyle, text) }

// Error formats an error message.
func Error(text string) string { return Render(ErrorStyle, text) }

// Warning formats a warning message.
func Warning(text string) string { return Render(WarningStyle, text) }

// Heading formats a section heading.
func Heading(text string) string { return Render(HeadingStyle, text) }

// Muted formats secondary detail.
func Muted(text string) string { return Render(MutedStyle, text) }

// Path formats a filesystem path.
func Path(text string) string { return Render(PathStyle, text) }
