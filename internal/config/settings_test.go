package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safeupload.dev/safeupload/internal/config"
	"safeupload.dev/safeupload/internal/ignorefile"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "safeupload.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSettings(t *testing.T) {
	t.Parallel()

	t.Run("defaults without a file", func(t *testing.T) {
		t.Parallel()
		s, err := config.LoadSettings("")
		require.NoError(t, err)
		assert.Equal(t, "Safe upload of clean files", s.CommitMessage)
		assert.Equal(t, "upload.log", s.LogFile)
		assert.Equal(t, "origin", s.RemoteName)
		assert.Equal(t, "git", s.GitBinary)
		assert.Equal(t, ".gitignore", s.IgnoreFileName)
		assert.Equal(t, ignorefile.DefaultPatterns, s.IgnorePatterns)
		assert.False(t, s.Confirm)
	})

	t.Run("overlays set fields only", func(t *testing.T) {
		t.Parallel()
		path := writeSettings(t, `
commitMessage: "nightly upload"
logFile: /tmp/uploads.log
confirm: true
ignoreFile:
  patterns:
    - "*.tmp"
    - dist/
`)
		s, err := config.LoadSettings(path)
		require.NoError(t, err)
		assert.Equal(t, "nightly upload", s.CommitMessage)
		assert.Equal(t, "/tmp/uploads.log", s.LogFile)
		assert.True(t, s.Confirm)
		assert.Equal(t, "origin", s.RemoteName)
		assert.Equal(t, ".gitignore", s.IgnoreFileName)
		assert.Equal(t, []string{"*.tmp", "dist/"}, s.IgnorePatterns)
		assert.Equal(t, ignorefile.Options{Name: ".gitignore", Patterns: []string{"*.tmp", "dist/"}}, s.IgnoreOptions())
	})

	t.Run("empty file keeps defaults", func(t *testing.T) {
		t.Parallel()
		s, err := config.LoadSettings(writeSettings(t, ""))
		require.NoError(t, err)
		assert.Equal(t, config.DefaultSettings(), s)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()
		_, err := config.LoadSettings(writeSettings(t, "filterRules: [\"*.bak\"]\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse settings file")
	})

	t.Run("fails on a missing file", func(t *testing.T) {
		t.Parallel()
		_, err := config.LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
