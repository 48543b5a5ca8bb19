package git

import (
	"context"
	"fmt"
)

// Stage adds a single path, relative to the working directory, to the index
func (c *Client) Stage(ctx context.Context, relPath string) error {
	if _, err := c.run(ctx, "add", "--", relPath); err != nil {
		return fmt.Errorf("failed to stage %s: %w", relPath, err)
	}
	return nil
}
