package git

import (
	"context"
	"fmt"
)

// DefaultCommitMessage is used when no message is configured
const DefaultCommitMessage = "Safe upload of clean files"

// Commit records the index with the given message
func (c *Client) Commit(ctx context.Context, message string) error {
	if message == "" {
		message = DefaultCommitMessage
	}
	if _, err := c.run(ctx, "commit", "-m", message); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
