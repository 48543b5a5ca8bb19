// Package tui provides the console side of safeupload.
//
// It handles:
//   - Structured logging to the console and the upload log (Splog)
//   - Confirmation and text prompts (using survey and bubbletea)
//   - Terminal detection and styling (using go-isatty and lipgloss)
package tui
