// Package scenario provides a high-level test scenario that combines a Scene
// and a runtime Context wired to the real git binary, giving a terse API
// for integration tests of the upload action.
package scenario

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"safeupload.dev/safeupload/internal/actions"
	"safeupload.dev/safeupload/internal/config"
	"safeupload.dev/safeupload/internal/git"
	"safeupload.dev/safeupload/internal/runtime"
	"safeupload.dev/safeupload/internal/tui"
	"safeupload.dev/safeupload/testhelpers"
)

// Scenario represents a high-level test scenario that combines a Scene
// and a runtime Context.
type Scenario struct {
	T       *testing.T
	Scene   *testhelpers.Scene
	Context *runtime.Context
	// Output receives console output and git's streamed output
	Output *bytes.Buffer

	result *actions.UploadResult
	err    error
}

// NewScenario creates a new Scenario with an optional setup function.
// NOTE: This function is NOT safe for parallel tests as it uses t.Setenv.
func NewScenario(t *testing.T, setup testhelpers.SceneSetup) *Scenario {
	t.Helper()

	// Force non-interactive mode for tests
	t.Setenv("SAFEUPLOAD_NON_INTERACTIVE", "true")

	scene := testhelpers.NewScene(t, setup)

	out := &bytes.Buffer{}
	splog, err := tui.NewSplogWithOptions(tui.SplogOptions{
		LogFile: scene.LogFile,
		Verbose: true,
		Stdout:  out,
		Stderr:  out,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = splog.Close() })

	runner := git.NewExecRunner(git.DefaultBinary)
	runner.Output = out
	runner.Env = testhelpers.GitEnv()

	return &Scenario{
		T:       t,
		Scene:   scene,
		Context: runtime.NewContext(context.Background(), splog, runner, config.DefaultSettings()),
		Output:  out,
	}
}

// WithFile writes a file into the source tree.
func (s *Scenario) WithFile(rel, content string) *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.Scene.WriteFile(rel, content))
	return s
}

// WithSettings replaces the settings used by later uploads.
func (s *Scenario) WithSettings(fn func(*config.Settings)) *Scenario {
	fn(&s.Context.Settings)
	return s
}

// Config returns a workflow config pointing at the scene.
func (s *Scenario) Config(branch string, dryRun bool) config.WorkflowConfig {
	s.T.Helper()
	cfg, err := config.NewWorkflowConfig(s.Scene.Source, s.Scene.Remote.Dir, branch, dryRun)
	require.NoError(s.T, err)
	return cfg
}

// Upload runs the upload action and records its outcome.
func (s *Scenario) Upload(branch string, dryRun bool) *Scenario {
	s.T.Helper()
	s.result, s.err = actions.UploadAction(s.Context, actions.UploadOptions{Config: s.Config(branch, dryRun)})
	return s
}

// Result returns the outcome of the last Upload.
func (s *Scenario) Result() (*actions.UploadResult, error) {
	return s.result, s.err
}

// ExpectSuccess asserts the last Upload succeeded.
func (s *Scenario) ExpectSuccess() *Scenario {
	s.T.Helper()
	require.NoError(s.T, s.err, "upload failed, output:\n%s", s.Output.String())
	return s
}

// ExpectFailure asserts the last Upload failed with target in its chain.
func (s *Scenario) ExpectFailure(target error) *Scenario {
	s.T.Helper()
	require.Error(s.T, s.err)
	if target != nil {
		require.ErrorIs(s.T, s.err, target)
	}
	require.Equal(s.T, actions.StateFailed, s.result.State)
	return s
}

// ExpectRemoteFiles asserts the files pushed to branch.
func (s *Scenario) ExpectRemoteFiles(branch string, expected ...string) *Scenario {
	s.T.Helper()
	testhelpers.ExpectFiles(s.T, s.Scene.Remote, branch, expected)
	return s
}

// ExpectRemoteCommits asserts the commit subjects on branch, newest first.
func (s *Scenario) ExpectRemoteCommits(branch string, expected ...string) *Scenario {
	s.T.Helper()
	testhelpers.ExpectCommits(s.T, s.Scene.Remote, branch, expected)
	return s
}
