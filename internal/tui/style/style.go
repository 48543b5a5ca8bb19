// Package style holds the lipgloss styles of console output.
package style

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
)

// Heading renders a section title
func Heading(text string) string {
	return headingStyle.Render(text)
}

// Path renders a file path
func Path(text string) string {
	return pathStyle.Render(text)
}

// ColorBranchName colors a branch name
func ColorBranchName(branchName string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("6")).
		Render(branchName)
}

// Warning renders warning text
func Warning(text string) string {
	return warningStyle.Render(text)
}

// Error renders error text
func Error(text string) string {
	return errorStyle.Render(text)
}

// Success renders a completion message
func Success(text string) string {
	return successStyle.Render(text)
}

// Muted renders low-priority text such as debug lines
func Muted(text string) string {
	return mutedStyle.Render(text)
}
