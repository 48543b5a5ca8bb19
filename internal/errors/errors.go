// Package errors provides sentinel errors and custom error types for safeupload.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrUsage indicates the command line was incomplete or malformed
	ErrUsage = errors.New("usage error")

	// ErrInvalidSource indicates the source directory is missing or not a directory
	ErrInvalidSource = errors.New("invalid source directory")

	// ErrToolNotFound indicates the git executable is missing or misbehaving
	ErrToolNotFound = errors.New("git executable not found")

	// ErrPathInspection indicates a single path could not be inspected during the walk
	ErrPathInspection = errors.New("path inspection failed")

	// ErrCommandFailed indicates an external command exited with a nonzero status
	ErrCommandFailed = errors.New("command failed")

	// ErrCancelled indicates the user declined to continue
	ErrCancelled = errors.New("upload cancelled")
)

// ToolNotFoundError represents a missing or broken version-control executable
type ToolNotFoundError struct {
	Tool string
	Err  error
}

func (e *ToolNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s is not installed or not found in PATH: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("%s is not installed or not found in PATH", e.Tool)
}

// Is returns true if the target error is ErrToolNotFound
func (e *ToolNotFoundError) Is(target error) bool {
	return target == ErrToolNotFound
}

func (e *ToolNotFoundError) Unwrap() error {
	return e.Err
}

// NewToolNotFoundError creates a new ToolNotFoundError
func NewToolNotFoundError(tool string, err error) *ToolNotFoundError {
	return &ToolNotFoundError{Tool: tool, Err: err}
}

// PathInspectionError represents a path that could not be stat'ed or classified
type PathInspectionError struct {
	Path string
	Err  error
}

func (e *PathInspectionError) Error() string {
	return fmt.Sprintf("error checking path %s: %v", e.Path, e.Err)
}

// Is returns true if the target error is ErrPathInspection
func (e *PathInspectionError) Is(target error) bool {
	return target == ErrPathInspection
}

func (e *PathInspectionError) Unwrap() error {
	return e.Err
}

// NewPathInspectionError creates a new PathInspectionError
func NewPathInspectionError(path string, err error) *PathInspectionError {
	return &PathInspectionError{Path: path, Err: err}
}

// CommandError represents an external command that exited nonzero
type CommandError struct {
	Command  string
	Args     []string
	ExitCode int
	Output   string
	Err      error
}

// CommandLine returns the failed command as a single space-joined string
func (e *CommandError) CommandLine() string {
	if len(e.Args) == 0 {
		return e.Command
	}
	return e.Command + " " + strings.Join(e.Args, " ")
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command failed: %s", e.CommandLine())
	if e.ExitCode > 0 {
		msg += fmt.Sprintf(" (exit status %d)", e.ExitCode)
	} else if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Is returns true if the target error is ErrCommandFailed
func (e *CommandError) Is(target error) bool {
	return target == ErrCommandFailed
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError
func NewCommandError(command string, args []string, exitCode int, output string, err error) *CommandError {
	return &CommandError{
		Command:  command,
		Args:     args,
		ExitCode: exitCode,
		Output:   output,
		Err:      err,
	}
}
