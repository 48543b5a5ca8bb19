// Package testhelpers provides testing utilities for the safeupload CLI,
// including a scene system, Git repository helpers, and custom assertions.
package testhelpers

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// Must is a generic helper function that panics if err is not nil,
// otherwise returns the value. This is useful for test setup code
// where errors are not expected and should halt execution immediately.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// ExpectFiles asserts that rev tracks exactly the expected paths.
func ExpectFiles(t *testing.T, repo *GitRepo, rev string, expected []string) {
	t.Helper()

	files, err := repo.ListFiles(rev)
	require.NoError(t, err, "Failed to list files at %s", rev)

	sort.Strings(files)
	expected = append([]string(nil), expected...)
	sort.Strings(expected)

	require.Equal(t, expected, files, "Files do not match")
}

// ExpectCommits asserts the commit subjects reachable from rev, newest first.
func ExpectCommits(t *testing.T, repo *GitRepo, rev string, expected []string) {
	t.Helper()

	messages, err := repo.ListCommitMessages(rev)
	require.NoError(t, err, "Failed to list commits at %s", rev)
	require.Equal(t, expected, messages, "Commits do not match")
}
