package git

import (
	"context"
	"fmt"
)

// CreateAndCheckoutBranch creates and checks out a new branch
func (c *Client) CreateAndCheckoutBranch(ctx context.Context, branchName string) error {
	if _, err := c.run(ctx, "checkout", "-b", branchName); err != nil {
		return fmt.Errorf("failed to create and checkout branch %s: %w", branchName, err)
	}
	return nil
}
