package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	uploaderrors "safeupload.dev/safeupload/internal/errors"
)

// MetadataDir is the repository metadata directory inside a working copy
const MetadataDir = ".git"

// Client runs git subcommands in one working directory
type Client struct {
	runner Runner
	dir    string
	tool   string
}

// NewClient creates a Client bound to dir
func NewClient(runner Runner, dir string) *Client {
	tool := DefaultBinary
	if er, ok := runner.(*ExecRunner); ok {
		tool = er.binary()
	}
	return &Client{runner: runner, dir: dir, tool: tool}
}

// Dir returns the working directory of the client
func (c *Client) Dir() string {
	return c.dir
}

func (c *Client) run(ctx context.Context, args ...string) (Result, error) {
	return c.runner.Run(ctx, c.dir, args...)
}

// Version runs the version query. Any failure, including a nonzero exit,
// is reported as a *errors.ToolNotFoundError.
func (c *Client) Version(ctx context.Context) (string, error) {
	res, err := c.run(ctx, "--version")
	if err != nil {
		if errors.Is(err, uploaderrors.ErrToolNotFound) {
			return "", err
		}
		return "", uploaderrors.NewToolNotFoundError(c.tool, err)
	}
	return strings.TrimSpace(res.Output), nil
}

// Init creates an empty repository in the working directory
func (c *Client) Init(ctx context.Context) error {
	if _, err := c.run(ctx, "init"); err != nil {
		return fmt.Errorf("failed to initialize repository: %w", err)
	}
	return nil
}

// IsRepository reports whether dir already holds repository metadata
func IsRepository(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, MetadataDir))
	return err == nil
}

// InitResult describes what EnsureRepository did
type InitResult struct {
	// Created is true when the repository was initialized by this call
	Created bool
	// Drift lists differences between an existing repository and the
	// requested remote and branch. They are reported, never fixed.
	Drift []string
}

// EnsureRepository initializes the working directory as a repository on a
// new branch with the remote registered, unless repository metadata is
// already present. The steps run in order and the first failure aborts;
// nothing is rolled back.
func (c *Client) EnsureRepository(ctx context.Context, remoteName, remoteURL, branch string) (InitResult, error) {
	if IsRepository(c.dir) {
		return InitResult{Drift: CheckDrift(c.dir, remoteName, remoteURL, branch)}, nil
	}

	if err := c.Init(ctx); err != nil {
		return InitResult{}, err
	}
	if err := c.CreateAndCheckoutBranch(ctx, branch); err != nil {
		return InitResult{}, err
	}
	if err := c.AddRemote(ctx, remoteName, remoteURL); err != nil {
		return InitResult{}, err
	}
	return InitResult{Created: true}, nil
}
