package errors

import (
	"strings"
	"unicode"
)

// ValidateSymbolName validates a symbol or tensor base name.
// It rejects names that could not round-trip through term files or
// expression keys.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or whitespace
//   - No characters reserved by the expression syntax: ( ) , [ ] *
//   - Maximum length of 256 characters
func ValidateSymbolName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidExpr, "symbol name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidExpr, "symbol name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidExpr, "symbol name contains invalid characters")
		}
	}

	if strings.ContainsAny(name, "(),[]*") {
		return New(ErrCodeInvalidExpr, "symbol name contains reserved characters")
	}

	return nil
}

// ValidateTermFilename validates a term-file filename.
// It ensures the filename is a simple basename without path components.
func ValidateTermFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidFormat, "term filename cannot be empty")
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidFormat, "term filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidFormat, "term filename cannot be a hidden file")
	}

	return nil
}

// ValidatePath validates an output file path for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
