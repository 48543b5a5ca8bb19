// Package config holds the inputs of an upload.
//
// It handles:
//   - The workflow configuration built from command-line flags
//   - Optional settings loaded from a YAML file
//   - Validation of the source directory
package config
