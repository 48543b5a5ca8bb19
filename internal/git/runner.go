package git

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	uploaderrors "safeupload.dev/safeupload/internal/errors"
)

// DefaultBinary is the executable looked up on PATH
const DefaultBinary = "git"

// Result is the outcome of one external command
type Result struct {
	Args     []string
	ExitCode int
	Output   string
}

// Success reports whether the command exited zero
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner executes a single command in a working directory.
// Implementations block until the command exits and return a
// *errors.CommandError when it exits nonzero.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (Result, error)
}

// ExecRunner runs the git executable as a subprocess.
// Combined stdout and stderr are captured and streamed to Output as they
// arrive. There is no timeout; only ctx cancellation stops a command.
type ExecRunner struct {
	Binary string
	Output io.Writer
	Env    []string
}

// NewExecRunner creates an ExecRunner that streams to os.Stdout
func NewExecRunner(binary string) *ExecRunner {
	if binary == "" {
		binary = DefaultBinary
	}
	return &ExecRunner{Binary: binary, Output: os.Stdout}
}

func (r *ExecRunner) binary() string {
	if r.Binary == "" {
		return DefaultBinary
	}
	return r.Binary
}

// Run executes the binary with args in dir
func (r *ExecRunner) Run(ctx context.Context, dir string, args ...string) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	binary := r.binary()
	result := Result{Args: args}

	if _, err := exec.LookPath(binary); err != nil {
		result.ExitCode = -1
		return result, uploaderrors.NewToolNotFoundError(binary, err)
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = dir
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}

	var combined bytes.Buffer
	var w io.Writer = &combined
	if r.Output != nil {
		w = io.MultiWriter(&combined, r.Output)
	}
	// Same writer on both streams keeps the interleaving and serializes writes
	cmd.Stdout = w
	cmd.Stderr = w

	err := cmd.Run()
	result.Output = combined.String()
	if err == nil {
		return result, nil
	}

	result.ExitCode = -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
	}
	if ctx.Err() != nil {
		err = ctx.Err()
	}
	return result, uploaderrors.NewCommandError(binary, args, result.ExitCode, result.Output, err)
}

// CommandLine renders args the way a user would type them
func CommandLine(binary string, args []string) string {
	return strings.TrimSpace(binary + " " + strings.Join(args, " "))
}
