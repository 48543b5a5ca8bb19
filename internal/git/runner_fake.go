package git

import (
	"context"
	"errors"
	"sync"

	uploaderrors "safeupload.dev/safeupload/internal/errors"
)

// Call records one invocation seen by FakeRunner
type Call struct {
	Dir  string
	Args []string
}

// Subcommand returns the first argument, e.g. "commit"
func (c Call) Subcommand() string {
	if len(c.Args) == 0 {
		return ""
	}
	return c.Args[0]
}

// String renders the call as a git command line
func (c Call) String() string {
	return CommandLine(DefaultBinary, c.Args)
}

// FakeRunner is a Runner for tests. It records every call and fails the
// subcommands it was told to fail, without starting any process.
type FakeRunner struct {
	mu       sync.Mutex
	calls    []Call
	failures map[string]error
	outputs  map[string]string
}

// NewFakeRunner creates a FakeRunner where every command succeeds
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		failures: make(map[string]error),
		outputs:  make(map[string]string),
	}
}

// Run implements Runner
func (f *FakeRunner) Run(_ context.Context, dir string, args ...string) (Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	argsCopy := append([]string(nil), args...)
	call := Call{Dir: dir, Args: argsCopy}
	f.calls = append(f.calls, call)

	result := Result{Args: argsCopy, Output: f.outputs[call.Subcommand()]}
	if err, ok := f.failures[call.Subcommand()]; ok {
		result.ExitCode = 1
		var cmdErr *uploaderrors.CommandError
		if errors.As(err, &cmdErr) {
			result.ExitCode = cmdErr.ExitCode
		}
		return result, err
	}
	return result, nil
}

// FailOn makes the subcommand exit with the given nonzero status
func (f *FakeRunner) FailOn(subcommand string, exitCode int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[subcommand] = uploaderrors.NewCommandError(DefaultBinary, []string{subcommand}, exitCode, "", nil)
}

// FailWith makes the subcommand return err
func (f *FakeRunner) FailWith(subcommand string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[subcommand] = err
}

// SetOutput sets the captured output returned for the subcommand
func (f *FakeRunner) SetOutput(subcommand, output string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outputs[subcommand] = output
}

// Calls returns a copy of every recorded call
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Commands returns every recorded call rendered as a command line
func (f *FakeRunner) Commands() []string {
	calls := f.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}

// Subcommands returns the first argument of every recorded call
func (f *FakeRunner) Subcommands() []string {
	calls := f.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Subcommand()
	}
	return out
}
