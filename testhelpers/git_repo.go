package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// GitEnv returns environment entries that isolate git from the user's
// configuration and give commits a fixed identity.
func GitEnv() []string {
	return []string{
		"GIT_CONFIG_GLOBAL=/dev/null",
		"GIT_CONFIG_NOSYSTEM=1",
		"GIT_AUTHOR_NAME=Test User",
		"GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=Test User",
		"GIT_COMMITTER_EMAIL=test@example.com",
		"GIT_TERMINAL_PROMPT=0",
	}
}

// HasGit reports whether a git executable is on PATH
func HasGit() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// GitRepo represents a Git repository for testing purposes.
type GitRepo struct {
	Dir  string
	Bare bool
}

// NewBareRepo initializes a bare repository in dir to act as a remote.
func NewBareRepo(dir string) (*GitRepo, error) {
	cmd := exec.Command("git", "init", "--bare", dir)
	cmd.Env = append(os.Environ(), GitEnv()...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("failed to create bare repo: %w, output: %s", err, string(output))
	}
	return &GitRepo{Dir: dir, Bare: true}, nil
}

// OpenGitRepo wraps an existing working copy.
func OpenGitRepo(dir string) *GitRepo {
	return &GitRepo{Dir: dir}
}

// RunGitCommand executes a git command and returns an error if it fails.
func (r *GitRepo) RunGitCommand(args ...string) error {
	_, err := r.RunGitCommandAndGetOutput(args...)
	return err
}

// RunGitCommandAndGetOutput executes a git command and returns its trimmed output.
func (r *GitRepo) RunGitCommandAndGetOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), GitEnv()...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w, output: %s", strings.Join(args, " "), err, string(output))
	}
	return strings.TrimSpace(string(output)), nil
}

// ListFiles returns the paths tracked at rev, in git's order.
func (r *GitRepo) ListFiles(rev string) ([]string, error) {
	output, err := r.RunGitCommandAndGetOutput("ls-tree", "-r", "--name-only", rev)
	if err != nil {
		return nil, err
	}
	return splitLines(output), nil
}

// ListCommitMessages returns the subjects of the commits reachable from rev,
// newest first.
func (r *GitRepo) ListCommitMessages(rev string) ([]string, error) {
	output, err := r.RunGitCommandAndGetOutput("log", "--format=%s", rev)
	if err != nil {
		return nil, err
	}
	return splitLines(output), nil
}

// ShowFile returns the content of path at rev.
func (r *GitRepo) ShowFile(rev, path string) (string, error) {
	return r.RunGitCommandAndGetOutput("show", rev+":"+path)
}

// CurrentBranchName returns the branch HEAD points to.
func (r *GitRepo) CurrentBranchName() (string, error) {
	return r.RunGitCommandAndGetOutput("symbolic-ref", "--short", "HEAD")
}

// GetRevision returns the SHA of a revision (branch, tag, or commit reference).
func (r *GitRepo) GetRevision(rev string) (string, error) {
	return r.RunGitCommandAndGetOutput("rev-parse", rev)
}

// splitLines splits a string by newlines and returns non-empty lines.
func splitLines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}
