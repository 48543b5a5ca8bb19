package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"safeupload.dev/safeupload/internal/git"
	"safeupload.dev/safeupload/internal/ignorefile"
)

// DefaultLogFile is relative to the current working directory
const DefaultLogFile = "upload.log"

// EnvConfigPath names a settings file when --config is not given
const EnvConfigPath = "SAFEUPLOAD_CONFIG"

// Settings are the knobs around the workflow that are not part of the
// WorkflowConfig. The filter rules are not configurable.
type Settings struct {
	CommitMessage  string
	LogFile        string
	RemoteName     string
	GitBinary      string
	IgnoreFileName string
	IgnorePatterns []string
	Confirm        bool
}

// DefaultSettings returns the built-in settings
func DefaultSettings() Settings {
	ignore := ignorefile.DefaultOptions()
	return Settings{
		CommitMessage:  git.DefaultCommitMessage,
		LogFile:        DefaultLogFile,
		RemoteName:     git.DefaultRemote,
		GitBinary:      git.DefaultBinary,
		IgnoreFileName: ignore.Name,
		IgnorePatterns: ignore.Patterns,
	}
}

// IgnoreOptions returns the options for the ignore-file generator
func (s Settings) IgnoreOptions() ignorefile.Options {
	return ignorefile.Options{Name: s.IgnoreFileName, Patterns: s.IgnorePatterns}
}

// FileSettings is the on-disk YAML form. Unset fields keep their defaults.
type FileSettings struct {
	CommitMessage *string             `yaml:"commitMessage,omitempty"`
	LogFile       *string             `yaml:"logFile,omitempty"`
	RemoteName    *string             `yaml:"remoteName,omitempty"`
	GitBinary     *string             `yaml:"gitBinary,omitempty"`
	Confirm       *bool               `yaml:"confirm,omitempty"`
	IgnoreFile    *IgnoreFileSettings `yaml:"ignoreFile,omitempty"`
}

// IgnoreFileSettings overrides the generated ignore manifest
type IgnoreFileSettings struct {
	Name     *string  `yaml:"name,omitempty"`
	Patterns []string `yaml:"patterns,omitempty"`
}

// Apply overlays the set fields of fs onto s
func (s Settings) Apply(fs FileSettings) Settings {
	if fs.CommitMessage != nil && *fs.CommitMessage != "" {
		s.CommitMessage = *fs.CommitMessage
	}
	if fs.LogFile != nil && *fs.LogFile != "" {
		s.LogFile = *fs.LogFile
	}
	if fs.RemoteName != nil && *fs.RemoteName != "" {
		s.RemoteName = *fs.RemoteName
	}
	if fs.GitBinary != nil && *fs.GitBinary != "" {
		s.GitBinary = *fs.GitBinary
	}
	if fs.Confirm != nil {
		s.Confirm = *fs.Confirm
	}
	if fs.IgnoreFile != nil {
		if fs.IgnoreFile.Name != nil && *fs.IgnoreFile.Name != "" {
			s.IgnoreFileName = *fs.IgnoreFile.Name
		}
		if len(fs.IgnoreFile.Patterns) > 0 {
			s.IgnorePatterns = append([]string(nil), fs.IgnoreFile.Patterns...)
		}
	}
	return s
}

// LoadSettings returns the defaults overlaid with the YAML file at path.
// An empty path returns the defaults. Unknown keys are rejected.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		return settings, nil
	}

	f, err := os.Open(path) //nolint:gosec // path comes from the user
	if err != nil {
		return settings, fmt.Errorf("failed to open settings file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var fs FileSettings
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&fs); err != nil {
		if errors.Is(err, io.EOF) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}

	return settings.Apply(fs), nil
}
