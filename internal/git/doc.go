// Package git runs the git commands of an upload.
//
// It wraps git command execution and provides a Go-friendly interface for:
//   - Tool validation (version query)
//   - Repository setup (init, branch creation, remote registration)
//   - Staging, committing and pushing
//   - Read-only inspection of an existing repository through go-git
//
// This package should be the only place where git commands are executed.
package git
