package tui

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsTTY returns true if both stdin and stdout are terminals
func IsTTY() bool {
	return (isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
		(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
}

// IsInteractive reports whether prompts may be shown.
// SAFEUPLOAD_NON_INTERACTIVE forces non-interactive mode.
func IsInteractive() bool {
	if os.Getenv("SAFEUPLOAD_NON_INTERACTIVE") != "" {
		return false
	}
	return IsTTY()
}
