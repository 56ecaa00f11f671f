package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateGraphName validates a named-graph identifier for safety and
// correctness. Graph names become storage keys and URL path segments, so
// the rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateGraphName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidGraph, "graph name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidGraph, "graph name too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidGraph, "graph name contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
		"/",    // Path separator
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidGraph, "graph name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// nodeIDRegex matches node identifiers safe for use in queries and URLs.
var nodeIDRegex = regexp.MustCompile(`^[^\s/\\]+$`)

// ValidateNodeID validates a node identifier. Node IDs appear in URL
// path segments and cache keys, so whitespace and path separators are
// rejected.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "node id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node id contains invalid control characters")
		}
	}

	if !nodeIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid node id: %q", id)
	}

	return nil
}

// ValidatePath validates a user-supplied output file path. Output paths
// may be absolute or relative; the checks catch what the filesystem
// layer would otherwise accept silently or mangle:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must name a file, not a directory (no trailing separator)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidPath, "path names a directory, not a file")
	}

	return nil
}

// ValidateURL validates a URL carried in graph content (node images and
// resource links). Only http and https pass; schemes like file: or
// javascript: would turn a stored graph into an injection vector for
// whatever renders it.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
