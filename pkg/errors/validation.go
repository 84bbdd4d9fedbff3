package errors

import (
	"strings"
	"unicode"
)

// ValidateLockfilePath rejects paths that could escape the analysis root
// when a lockfile location arrives from an untrusted source such as the
// HTTP API. Rules are deliberately conservative; legitimate relative paths
// inside a project always pass.
func ValidateLockfilePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "lockfile path cannot be empty")
	}
	if len(path) > 4096 {
		return New(ErrCodeInvalidPath, "lockfile path too long")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "lockfile path contains control characters")
		}
	}
	for _, pattern := range []string{"..", "\x00", "\\"} {
		if strings.Contains(path, pattern) {
			return New(ErrCodeInvalidPath, "lockfile path contains invalid sequence %q", pattern)
		}
	}
	return nil
}
