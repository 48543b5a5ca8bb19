package git

import (
	"context"
	"fmt"
)

// PushBranch pushes a branch to remote and sets it as upstream
func (c *Client) PushBranch(ctx context.Context, remote, branchName string) error {
	if remote == "" {
		remote = DefaultRemote
	}
	if _, err := c.run(ctx, "push", "-u", remote, branchName); err != nil {
		return fmt.Errorf("failed to push branch %s: %w", branchName, err)
	}
	return nil
}
