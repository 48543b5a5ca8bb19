package tui

import (
	"os"
)

// GetLogFilePath returns the path of the upload log.
// An explicit flag value wins, then SAFEUPLOAD_LOG_FILE, then the
// configured path. A relative path is relative to the working directory.
func GetLogFilePath(flagValue, configured string) string {
	if flagValue != "" {
		return flagValue
	}
	if customPath := os.Getenv("SAFEUPLOAD_LOG_FILE"); customPath != "" {
		return customPath
	}
	return configured
}
