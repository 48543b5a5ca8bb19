package filter_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	uploaderrors "safeupload.dev/safeupload/internal/errors"
	"safeupload.dev/safeupload/internal/filter"
)

// writeTree creates the given slash-separated files under root
func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(f), 0o600))
	}
}

func TestWalk(t *testing.T) {
	t.Parallel()

	t.Run("keeps only files matching no rule", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		writeTree(t, root, "a.txt", ".DS_Store", "sub/b.txt", "sub/Thumbs.db", "sub/._b.txt", ".env")

		candidates, err := filter.Walk(root, filter.DefaultOptions())
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a.txt", "sub/b.txt"}, filter.RelPaths(candidates))

		for _, c := range candidates {
			assert.True(t, filepath.IsAbs(c.Path))
			assert.Equal(t, filepath.Join(root, filepath.FromSlash(c.RelPath)), c.Path)
		}
	})

	t.Run("matches file names not directory names", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		writeTree(t, root, ".config/app.txt", "_MACOSX/readme.md")

		candidates, err := filter.Walk(root, filter.DefaultOptions())
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{".config/app.txt", "_MACOSX/readme.md"}, filter.RelPaths(candidates))
	})

	t.Run("never emits directories", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "empty", "nested"), 0o750))

		candidates, err := filter.Walk(root, filter.DefaultOptions())
		require.NoError(t, err)
		assert.Empty(t, candidates)
	})

	t.Run("does not descend into repository metadata", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		writeTree(t, root, ".git/HEAD", ".git/config", "main.go")

		candidates, err := filter.Walk(root, filter.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, []string{"main.go"}, filter.RelPaths(candidates))
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		writeTree(t, root, "a.txt", "b/c.txt", "b/d/e.txt", ".hidden")

		first, err := filter.Walk(root, filter.DefaultOptions())
		require.NoError(t, err)
		second, err := filter.Walk(root, filter.DefaultOptions())
		require.NoError(t, err)
		assert.ElementsMatch(t, filter.RelPaths(first), filter.RelPaths(second))
	})

	t.Run("reports every skipped path", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		writeTree(t, root, "keep.txt", ".DS_Store", "sub/._junk")

		skipped := map[string]error{}
		opts := filter.DefaultOptions()
		opts.OnSkip = func(path string, reason error) {
			skipped[path] = reason
		}

		_, err := filter.Walk(root, opts)
		require.NoError(t, err)
		require.Len(t, skipped, 3)
		require.ErrorIs(t, skipped[filepath.Join(root, "sub")], filter.ErrDirectory)

		reason := skipped[filepath.Join(root, ".DS_Store")]
		require.ErrorIs(t, reason, filter.ErrExcluded)
		var excluded *filter.ExcludedError
		require.ErrorAs(t, reason, &excluded)
		assert.Equal(t, ".DS_Store", excluded.Rule.String())

		require.ErrorIs(t, skipped[filepath.Join(root, "sub", "._junk")], filter.ErrExcluded)
	})

	t.Run("reports directories but not the root", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		writeTree(t, root, "a/b/c.txt", ".git/HEAD")

		var dirs []string
		opts := filter.DefaultOptions()
		opts.OnSkip = func(path string, reason error) {
			if errors.Is(reason, filter.ErrDirectory) {
				rel, err := filepath.Rel(root, path)
				require.NoError(t, err)
				dirs = append(dirs, filepath.ToSlash(rel))
			}
		}

		candidates, err := filter.Walk(root, opts)
		require.NoError(t, err)
		assert.Equal(t, []string{"a/b/c.txt"}, filter.RelPaths(candidates))
		assert.ElementsMatch(t, []string{".git", "a", "a/b"}, dirs)
	})

	t.Run("fails on a missing root", func(t *testing.T) {
		t.Parallel()
		_, err := filter.Walk(filepath.Join(t.TempDir(), "missing"), filter.DefaultOptions())
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestWalkSkipsSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on windows")
	}
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, "real.txt", "dir/inner.txt")
	require.NoError(t, os.Symlink(filepath.Join(root, "real.txt"), filepath.Join(root, "link.txt")))
	require.NoError(t, os.Symlink(filepath.Join(root, "dir"), filepath.Join(root, "dirlink")))

	var notRegular []string
	opts := filter.DefaultOptions()
	opts.OnSkip = func(path string, reason error) {
		if errors.Is(reason, filter.ErrNotRegular) {
			notRegular = append(notRegular, filepath.Base(path))
		}
	}

	candidates, err := filter.Walk(root, opts)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"real.txt", "dir/inner.txt"}, filter.RelPaths(candidates))
	assert.ElementsMatch(t, []string{"link.txt", "dirlink"}, notRegular)
}

func TestWalkContinuesPastUnreadableDirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced here")
	}
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, "a.txt", "locked/secret.txt", "open/b.txt")
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o750) })

	var inspectionErrs []error
	opts := filter.DefaultOptions()
	opts.OnSkip = func(_ string, reason error) {
		if errors.Is(reason, uploaderrors.ErrPathInspection) {
			inspectionErrs = append(inspectionErrs, reason)
		}
	}

	candidates, err := filter.Walk(root, opts)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.txt", "open/b.txt"}, filter.RelPaths(candidates))
	require.Len(t, inspectionErrs, 1)
	assert.ErrorIs(t, inspectionErrs[0], os.ErrPermission)
}
