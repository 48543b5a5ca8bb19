// Package ignorefile writes the default exclusion manifest into a source
// directory. An existing manifest is never modified.
package ignorefile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultName is the manifest file name git reads
const DefaultName = ".gitignore"

// DefaultPatterns covers OS metadata, logs, build output, compiled
// artifacts and IDE metadata. It is maintained separately from the filter
// rules and the two are not expected to agree.
var DefaultPatterns = []string{
	".DS_Store",
	"Thumbs.db",
	"*.log",
	"target/",
	"bin/",
	"*.class",
	".idea/",
	".vscode/",
	"*.iml",
}

// Options controls the generated manifest
type Options struct {
	Name     string
	Patterns []string
}

// DefaultOptions returns the standard manifest name and patterns
func DefaultOptions() Options {
	patterns := make([]string, len(DefaultPatterns))
	copy(patterns, DefaultPatterns)
	return Options{Name: DefaultName, Patterns: patterns}
}

// Content renders patterns one per line with a trailing newline
func Content(patterns []string) []byte {
	if len(patterns) == 0 {
		return nil
	}
	return []byte(strings.Join(patterns, "\n") + "\n")
}

// Path returns where the manifest lives under root
func Path(root string, opts Options) string {
	name := opts.Name
	if name == "" {
		name = DefaultName
	}
	return filepath.Join(root, name)
}

// Ensure creates the manifest under root if it does not exist yet.
// It reports whether a file was written.
func Ensure(root string, opts Options) (bool, error) {
	path := Path(root, opts)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644) //nolint:gosec // manifest is meant to be world readable
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create %s: %w", path, err)
	}

	if _, err := f.Write(Content(opts.Patterns)); err != nil {
		_ = f.Close()
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("failed to close %s: %w", path, err)
	}
	return true, nil
}
