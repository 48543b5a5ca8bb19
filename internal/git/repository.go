package git

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Repository wraps a go-git repository for read-only inspection
type Repository struct {
	*git.Repository
	path string
}

// OpenRepository opens the repository whose working copy is path.
// Parent directories are not searched.
func OpenRepository(path string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := git.PlainOpen(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	return &Repository{
		Repository: repo,
		path:       absPath,
	}, nil
}

// GetRepoRoot returns the root directory of the repository
func (r *Repository) GetRepoRoot() string {
	return r.path
}

// GetCurrentBranch returns the branch HEAD points at. It works on an unborn
// branch, where no commit exists yet.
func (r *Repository) GetCurrentBranch() (string, error) {
	head, err := r.Storer.Reference(plumbing.HEAD)
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}

	if head.Type() == plumbing.SymbolicReference {
		if !head.Target().IsBranch() {
			return "", fmt.Errorf("HEAD is not on a branch")
		}
		return head.Target().Short(), nil
	}
	return "", fmt.Errorf("HEAD is detached")
}

// GetRemoteURLs returns the URLs configured for the named remote
func (r *Repository) GetRemoteURLs(name string) ([]string, error) {
	remote, err := r.Remote(name)
	if err != nil {
		return nil, fmt.Errorf("failed to get remote %s: %w", name, err)
	}
	return remote.Config().URLs, nil
}

// CheckDrift compares the repository at dir with the requested remote and
// branch and describes every mismatch. Inspection failures are reported as
// drift too.
func CheckDrift(dir, remoteName, remoteURL, branch string) []string {
	if remoteName == "" {
		remoteName = DefaultRemote
	}

	repo, err := OpenRepository(dir)
	if err != nil {
		return []string{fmt.Sprintf("could not inspect existing repository: %v", err)}
	}

	var drift []string
	urls, err := repo.GetRemoteURLs(remoteName)
	switch {
	case err != nil:
		drift = append(drift, fmt.Sprintf("remote %s is not configured (requested %s)", remoteName, remoteURL))
	case !slices.Contains(urls, remoteURL):
		drift = append(drift, fmt.Sprintf("remote %s points to %v, not %s", remoteName, urls, remoteURL))
	}

	current, err := repo.GetCurrentBranch()
	switch {
	case err != nil:
		drift = append(drift, fmt.Sprintf("could not determine current branch: %v", err))
	case current != branch:
		drift = append(drift, fmt.Sprintf("current branch is %s, not %s", current, branch))
	}

	return drift
}
