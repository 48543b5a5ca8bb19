// Package runtime provides a context type that holds the logger, command
// runner and settings for use throughout the application. This avoids
// passing multiple parameters.
package runtime

import (
	"context"

	"safeupload.dev/safeupload/internal/config"
	"safeupload.dev/safeupload/internal/git"
	"safeupload.dev/safeupload/internal/tui"
)

// Context provides access to the runner and output for actions
type Context struct {
	context.Context
	Splog    *tui.Splog
	Runner   git.Runner
	Settings config.Settings
}

// NewContext creates a new context
func NewContext(ctx context.Context, splog *tui.Splog, runner git.Runner, settings config.Settings) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if splog == nil {
		splog = tui.NewSplog()
	}
	return &Context{
		Context:  ctx,
		Splog:    splog,
		Runner:   runner,
		Settings: settings,
	}
}

// GitClient returns a git client working in dir
func (c *Context) GitClient(dir string) *git.Client {
	return git.NewClient(c.Runner, dir)
}
