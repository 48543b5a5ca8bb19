package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	uploaderrors "safeupload.dev/safeupload/internal/errors"
)

// WorkflowConfig is the effective input of one upload. It is built once
// and passed by value.
type WorkflowConfig struct {
	// SourceDir is absolute
	SourceDir string
	RemoteURL string
	Branch    string
	DryRun    bool
}

// NewWorkflowConfig validates the raw flag values and resolves the source
// directory to an absolute path.
func NewWorkflowConfig(source, remote, branch string, dryRun bool) (WorkflowConfig, error) {
	var missing []string
	if isBlank(source) {
		missing = append(missing, "--source")
	}
	if isBlank(remote) {
		missing = append(missing, "--remote")
	}
	if isBlank(branch) {
		missing = append(missing, "--branch")
	}
	if len(missing) > 0 {
		return WorkflowConfig{}, fmt.Errorf("%w: %s must not be empty", uploaderrors.ErrUsage, strings.Join(missing, ", "))
	}

	absSource, err := filepath.Abs(source)
	if err != nil {
		return WorkflowConfig{}, fmt.Errorf("%w: failed to resolve %s: %v", uploaderrors.ErrInvalidSource, source, err)
	}

	info, err := os.Stat(absSource)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return WorkflowConfig{}, fmt.Errorf("%w: %s does not exist", uploaderrors.ErrInvalidSource, absSource)
	case err != nil:
		return WorkflowConfig{}, fmt.Errorf("%w: %v", uploaderrors.ErrInvalidSource, err)
	case !info.IsDir():
		return WorkflowConfig{}, fmt.Errorf("%w: %s is not a directory", uploaderrors.ErrInvalidSource, absSource)
	}

	return WorkflowConfig{
		SourceDir: absSource,
		RemoteURL: remote,
		Branch:    branch,
		DryRun:    dryRun,
	}, nil
}

// isBlank reports whether a flag value is empty or only whitespace. The
// value itself is passed through untouched.
func isBlank(v string) bool {
	return strings.TrimSpace(v) == ""
}
