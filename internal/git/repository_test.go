package git_test

import (
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safeupload.dev/safeupload/internal/git"
)

// initRepo creates a repository on an unborn branch with origin set to url
func initRepo(t *testing.T, branch, url string) string {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	head := plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName(branch))
	require.NoError(t, repo.Storer.SetReference(head))

	if url != "" {
		_, err = repo.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{url}})
		require.NoError(t, err)
	}
	return dir
}

func TestOpenRepository(t *testing.T) {
	t.Parallel()
	dir := initRepo(t, "upload", "https://example.com/repo.git")

	repo, err := git.OpenRepository(dir)
	require.NoError(t, err)

	branch, err := repo.GetCurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "upload", branch)

	urls, err := repo.GetRemoteURLs("origin")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/repo.git"}, urls)

	_, err = repo.GetRemoteURLs("upstream")
	require.Error(t, err)
}

func TestCheckDrift(t *testing.T) {
	t.Parallel()
	const url = "https://example.com/repo.git"

	tests := []struct {
		name      string
		repoURL   string
		repoHead  string
		wantDrift []string
	}{
		{
			name:     "matching repository",
			repoURL:  url,
			repoHead: "upload",
		},
		{
			name:      "different remote",
			repoURL:   "https://example.com/other.git",
			repoHead:  "upload",
			wantDrift: []string{"remote origin points to [https://example.com/other.git], not " + url},
		},
		{
			name:      "missing remote",
			repoHead:  "upload",
			wantDrift: []string{"remote origin is not configured (requested " + url + ")"},
		},
		{
			name:      "different branch",
			repoURL:   url,
			repoHead:  "main",
			wantDrift: []string{"current branch is main, not upload"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := initRepo(t, tt.repoHead, tt.repoURL)
			assert.Equal(t, tt.wantDrift, git.CheckDrift(dir, "origin", url, "upload"))
		})
	}
}

func TestCheckDriftUnreadableRepository(t *testing.T) {
	t.Parallel()
	drift := git.CheckDrift(t.TempDir(), "", "url", "main")
	require.Len(t, drift, 1)
	assert.Contains(t, drift[0], "could not inspect existing repository")
}
