package git

import (
	"context"
	"fmt"
)

// DefaultRemote is the name the upload remote is registered under
const DefaultRemote = "origin"

// AddRemote registers url under name
func (c *Client) AddRemote(ctx context.Context, name, url string) error {
	if name == "" {
		name = DefaultRemote
	}
	if _, err := c.run(ctx, "remote", "add", name, url); err != nil {
		return fmt.Errorf("failed to add remote %s: %w", name, err)
	}
	return nil
}
