package testhelpers

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// Scene is a temporary directory holding a source tree to upload and a bare
// repository to push it to.
type Scene struct {
	// Dir is the scene root and the working directory for CLI runs
	Dir string
	// Source is the directory passed as --source
	Source string
	// Remote is the bare repository passed as --remote
	Remote *GitRepo
	// LogFile is the path passed as --log-file
	LogFile string
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a new test scene. The test is skipped when git is not
// installed. Cleanup is handled by t.TempDir.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()
	if !HasGit() {
		t.Skip("git is not installed")
	}

	dir := t.TempDir()
	scene := &Scene{
		Dir:     dir,
		Source:  filepath.Join(dir, "src"),
		LogFile: filepath.Join(dir, "upload.log"),
	}

	if err := os.MkdirAll(scene.Source, 0o755); err != nil {
		t.Fatalf("Failed to create source dir: %v", err)
	}

	remote, err := NewBareRepo(filepath.Join(dir, "remote.git"))
	if err != nil {
		t.Fatalf("Failed to create remote: %v", err)
	}
	scene.Remote = remote

	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}

	return scene
}

// WriteFile writes content to a slash-separated path under the source tree.
func (s *Scene) WriteFile(rel, content string) error {
	path := filepath.Join(s.Source, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

// ReadLog returns the log file content, or "" if it was never written.
func (s *Scene) ReadLog() string {
	data, err := os.ReadFile(s.LogFile)
	if err != nil {
		return ""
	}
	return string(data)
}

// UploadArgs returns the flags that point the binary at this scene.
func (s *Scene) UploadArgs(branch string, extra ...string) []string {
	args := []string{
		"--source", s.Source,
		"--remote", s.Remote.Dir,
		"--branch", branch,
		"--log-file", s.LogFile,
	}
	return append(args, extra...)
}

// RunBinary runs the binary in the scene root with an isolated git
// environment and returns combined output and exit code.
func (s *Scene) RunBinary(binary string, args ...string) (string, int) {
	cmd := exec.Command(binary, args...)
	cmd.Dir = s.Dir
	cmd.Env = append(os.Environ(), GitEnv()...)
	cmd.Env = append(cmd.Env, "SAFEUPLOAD_NON_INTERACTIVE=true")
	output, err := cmd.CombinedOutput()
	if err == nil {
		return string(output), 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return string(output), exitErr.ExitCode()
	}
	return string(output) + err.Error(), -1
}

// BasicSceneSetup writes two uploadable files and one of each kind of junk.
func BasicSceneSetup(scene *Scene) error {
	files := map[string]string{
		"a.txt":          "alpha\n",
		"sub/b.txt":      "beta\n",
		".hidden":        "hidden\n",
		".DS_Store":      "junk",
		"._a.txt":        "junk",
		"Thumbs.db":      "junk",
		"sub/._b.txt":    "junk",
		"sub/.env":       "SECRET=1\n",
		"_MACOSX/c.txt":  "gamma\n",
		"docs/.DS_Store": "junk",
		"docs/readme.md": "# docs\n",
	}
	for rel, content := range files {
		if err := scene.WriteFile(rel, content); err != nil {
			return err
		}
	}
	return nil
}
