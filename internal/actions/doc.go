// Package actions provides the business logic behind the CLI.
//
// UploadAction walks the upload state machine: validate the git binary,
// filter the source tree, then either print the dry-run listing or
// initialize the repository and stage, commit and push the filtered files.
//
// Key patterns:
//   - Actions accept runtime.Context which provides the Splog, command runner and settings
//   - Every git invocation goes through git.Runner so tests can substitute git.FakeRunner
//   - Prompts are injected as callbacks; the action never reads the terminal itself
package actions
