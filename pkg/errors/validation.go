package errors

import (
	"strings"
	"unicode"
)

// ValidateNodeID validates a node identifier for safety and correctness.
// Node IDs end up in cache keys, DOT files, and store documents, so the
// rules are intentionally conservative:
//   - No empty IDs
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidTopology, "node ID cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidTopology, "node ID too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTopology, "node ID contains invalid control characters")
		}
	}

	return nil
}

// ValidateTopologyName validates a stored topology name.
// It ensures the name is a simple identifier without path components,
// preventing traversal when names are used in file-backed stores.
func ValidateTopologyName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "topology name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "topology name too long (max 128 characters)")
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidInput, "topology name cannot contain path separators")
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidInput, "topology name cannot contain traversal sequences")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "topology name contains invalid control characters")
		}
	}

	return nil
}
