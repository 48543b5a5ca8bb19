package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"safeupload.dev/safeupload/internal/cli"
	"safeupload.dev/safeupload/internal/tui"
)

// runInProcess executes the root command with args and returns the exit
// code and captured stdout and stderr.
func runInProcess(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd("1.2.3", "abc123", "2024-01-01")
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	code := cli.Execute(context.Background(), cmd)
	return code, stdout.String(), stderr.String()
}

func TestRootCommandValidation(t *testing.T) {
	t.Run("missing flags print usage and write no log", func(t *testing.T) {
		logFile := filepath.Join(t.TempDir(), "upload.log")

		code, _, stderr := runInProcess(t, "--source", t.TempDir(), "--log-file", logFile)
		require.Equal(t, 1, code)
		require.Contains(t, stderr, "required flag")
		require.Contains(t, stderr, "remote")
		require.Contains(t, stderr, "branch")
		require.Contains(t, stderr, "Usage:")
		require.NoFileExists(t, logFile)
	})

	t.Run("empty flag values are usage errors", func(t *testing.T) {
		logFile := filepath.Join(t.TempDir(), "upload.log")

		code, _, stderr := runInProcess(t, "--source", t.TempDir(), "--remote", " ", "--branch", "main", "--log-file", logFile)
		require.Equal(t, 1, code)
		require.Contains(t, stderr, "--remote must not be empty")
		require.Contains(t, stderr, "Usage:")
		require.NoFileExists(t, logFile)
	})

	t.Run("missing source is logged", func(t *testing.T) {
		dir := t.TempDir()
		logFile := filepath.Join(dir, "upload.log")
		missing := filepath.Join(dir, "nope")

		code, _, stderr := runInProcess(t, "--source", missing, "--remote", "r", "--branch", "main", "--log-file", logFile)
		require.Equal(t, 1, code)
		require.Contains(t, stderr, "does not exist")
		require.NotContains(t, stderr, "Usage:")

		data, err := os.ReadFile(logFile)
		require.NoError(t, err)
		line := strings.TrimSpace(string(data))
		require.Contains(t, line, ": ERROR: ")
		require.Contains(t, line, missing)

		stamp, _, found := strings.Cut(line, ": ERROR: ")
		require.True(t, found)
		_, err = time.Parse(tui.LogTimeFormat, stamp)
		require.NoError(t, err)
	})

	t.Run("source that is a file is rejected", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "file.txt")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

		code, _, stderr := runInProcess(t, "--source", file, "--remote", "r", "--branch", "main", "--log-file", filepath.Join(dir, "upload.log"))
		require.Equal(t, 1, code)
		require.Contains(t, stderr, "not a directory")
	})

	t.Run("bad settings file is reported without usage", func(t *testing.T) {
		dir := t.TempDir()
		settings := filepath.Join(dir, "settings.yaml")
		require.NoError(t, os.WriteFile(settings, []byte("unknownKey: true\n"), 0o644))

		code, _, stderr := runInProcess(t, "--source", dir, "--remote", "r", "--branch", "main", "--config", settings)
		require.Equal(t, 1, code)
		require.Contains(t, stderr, "failed to parse settings file")
		require.NotContains(t, stderr, "Usage:")
	})

	t.Run("positional arguments are rejected", func(t *testing.T) {
		code, _, stderr := runInProcess(t, "extra")
		require.Equal(t, 1, code)
		require.Contains(t, stderr, "unknown command")
	})

	t.Run("version flag", func(t *testing.T) {
		code, stdout, _ := runInProcess(t, "--version")
		require.Equal(t, 0, code)
		require.Contains(t, stdout, "1.2.3 (commit abc123, built 2024-01-01)")
	})
}
