// Package runtime provides the execution context for safeupload actions.
//
// It encapsulates shared dependencies needed by actions, such as the
// logger, the git command runner and the loaded settings.
package runtime
