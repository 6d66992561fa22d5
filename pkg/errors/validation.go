package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// maxNodeIDLength bounds identifiers read from graph files.
const maxNodeIDLength = 256

// ValidateNodeID validates a node identifier read from an external graph file.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}

	if len(id) > maxNodeIDLength {
		return New(ErrCodeInvalidInput, "node id too long (max %d characters)", maxNodeIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node id contains invalid control characters")
		}
	}

	return nil
}

// Supported graph file extensions.
var graphExtensions = map[string]bool{
	".gml":  true,
	".json": true,
}

// ValidateGraphPath validates the path of a graph file given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Extension must be .gml or .json (case-insensitive)
func ValidateGraphPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !graphExtensions[ext] {
		return New(ErrCodeInvalidFormat, "unsupported graph file %q (must be .gml or .json)", filepath.Base(path))
	}

	return nil
}

// ValidateDimensions checks that a canvas size is finite and positive.
func ValidateDimensions(width, height float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return New(ErrCodeInvalidConfig, "canvas dimensions must be positive, got %gx%g", width, height)
		}
	}
	return nil
}

// ValidatePositive checks that a named style value is finite and strictly positive.
func ValidatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be positive, got %g", name, v)
	}
	return nil
}
