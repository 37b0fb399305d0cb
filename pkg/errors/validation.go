package errors

import "strings"

// maxDimension bounds user-supplied width and height overrides. The CLI
// contract accepts positive integers up to 10^9.
const maxDimension = 1_000_000_000

// ValidateDimension validates a user-supplied width or height override.
// The name is used in error messages ("width", "height").
func ValidateDimension(name string, v int) error {
	if v <= 0 {
		return New(ErrCodeInvalidFlag, "%s must be a positive integer, got %d", name, v)
	}
	if v > maxDimension {
		return New(ErrCodeInvalidFlag, "%s too large (max %d)", name, maxDimension)
	}
	return nil
}

// ValidateOutputPath validates an output file path before opening it.
// The rules are conservative: no empty paths and no null bytes. "-" is
// allowed and means stdout.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidFlag, "output path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidFlag, "output path contains a null byte")
	}
	return nil
}
