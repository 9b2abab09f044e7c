package errors

import (
	"strings"
	"unicode"
)

// ValidateYear validates a diagram year. The dataset covers modern
// industrial material flows, so the accepted range is deliberately
// narrow.
func ValidateYear(year int) error {
	if year < 1900 || year > 2200 {
		return New(ErrCodeInvalidYear, "year out of range: %d", year)
	}
	return nil
}

// ValidateNodeID validates a node identifier from external input
// (API paths, saved layouts). IDs are lowercase snake_case tokens.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidInput, "node id too long (max 64 characters)")
	}
	for _, r := range id {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' {
			continue
		}
		return New(ErrCodeInvalidInput, "node id contains invalid character: %q", r)
	}
	return nil
}

// ValidateFieldName validates a flow field name from a data file.
// Field names may carry hyphens and spaces (legacy aliases) but never
// control characters or path-like content.
func ValidateFieldName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidRow, "field name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidRow, "field name too long (max 128 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidRow, "field name contains control characters")
		}
	}
	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidRow, "field name cannot contain path separators: %q", name)
	}
	return nil
}

// ValidateFormat validates a render format.
func ValidateFormat(format string) error {
	switch format {
	case "svg", "dot", "json":
		return nil
	}
	return New(ErrCodeInvalidFormat, "unsupported format: %q (use svg, dot, or json)", format)
}

// ValidatePath validates a data file path from configuration or CLI
// flags. It prevents path traversal and ensures reasonable length.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}
	return nil
}
