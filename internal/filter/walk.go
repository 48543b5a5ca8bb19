package filter

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	uploaderrors "safeupload.dev/safeupload/internal/errors"
)

var (
	// ErrExcluded is reported for regular files rejected by a rule
	ErrExcluded = errors.New("excluded by filter rule")

	// ErrNotRegular is reported for symlinks, devices, sockets and the like
	ErrNotRegular = errors.New("not a regular file")

	// ErrDirectory is reported for every directory below the root
	ErrDirectory = errors.New("is a directory")
)

// ExcludedError names the rule that rejected a file
type ExcludedError struct {
	Rule Rule
}

func (e *ExcludedError) Error() string {
	return fmt.Sprintf("excluded by rule %s", e.Rule)
}

// Is returns true if the target error is ErrExcluded
func (e *ExcludedError) Is(target error) bool {
	return target == ErrExcluded
}

// Candidate is a file that passed every rule
type Candidate struct {
	// Path is absolute
	Path string
	// RelPath is relative to the walk root and slash-separated
	RelPath string
}

// Options controls a Walk
type Options struct {
	Rules Rules

	// SkipDirs names directories that are never descended into
	SkipDirs []string

	// OnSkip is called for every path below the root that does not become a
	// Candidate. reason is ErrDirectory, ErrExcluded, ErrNotRegular or a
	// *errors.PathInspectionError.
	OnSkip func(path string, reason error)
}

// DefaultOptions returns the default rules and skips the repository
// metadata directory.
func DefaultOptions() Options {
	return Options{
		Rules:    DefaultRules(),
		SkipDirs: []string{".git"},
	}
}

// Walk returns the files under root that pass every rule, in traversal order.
// Errors on individual paths are reported through OnSkip and the walk
// continues; only a root that cannot be read is fatal.
func Walk(root string, opts Options) ([]Candidate, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	skip := func(path string, reason error) {
		if opts.OnSkip != nil {
			opts.OnSkip(path, reason)
		}
	}

	skipDirs := make(map[string]bool, len(opts.SkipDirs))
	for _, d := range opts.SkipDirs {
		skipDirs[d] = true
	}

	var candidates []Candidate
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == absRoot {
				return walkErr
			}
			skip(path, uploaderrors.NewPathInspectionError(path, walkErr))
			return nil
		}

		if d.IsDir() {
			if path == absRoot {
				return nil
			}
			skip(path, ErrDirectory)
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			skip(path, uploaderrors.NewPathInspectionError(path, err))
			return nil
		}
		if !info.Mode().IsRegular() {
			skip(path, ErrNotRegular)
			return nil
		}

		if ok, rule := Classify(d.Name(), opts.Rules); !ok {
			skip(path, &ExcludedError{Rule: *rule})
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			skip(path, uploaderrors.NewPathInspectionError(path, err))
			return nil
		}
		candidates = append(candidates, Candidate{
			Path:    path,
			RelPath: filepath.ToSlash(rel),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", absRoot, err)
	}

	return candidates, nil
}

// RelPaths returns the root-relative paths of the candidates
func RelPaths(candidates []Candidate) []string {
	paths := make([]string, len(candidates))
	for i, c := range candidates {
		paths[i] = c.RelPath
	}
	return paths
}
