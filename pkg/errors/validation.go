package errors

import (
	"strings"
	"unicode"
)

// maxIDLength bounds blueprint ids accepted from documents and HTTP routes.
const maxIDLength = 256

// ValidateBlueprintID validates a blueprint id taken from user input.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters
//   - No slashes, which would not round-trip through URL paths
//   - Maximum length of 256 characters
func ValidateBlueprintID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidBlueprint, "blueprint id cannot be empty")
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidBlueprint, "blueprint id too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidBlueprint, "blueprint id contains invalid control characters")
		}
	}

	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidBlueprint, "blueprint id cannot contain slashes: %q", id)
	}

	return nil
}

// ValidatePath validates an image path referenced by a scene document.
// Paths are resolved against the scene's directory, so they must stay inside
// it.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
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

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateCanvas validates canvas dimensions and scale.
func ValidateCanvas(width, height, scale float64) error {
	const maxExtent = 16384
	switch {
	case width <= 0 || height <= 0:
		return New(ErrCodeInvalidInput, "canvas size must be positive, got %gx%g", width, height)
	case scale <= 0:
		return New(ErrCodeInvalidInput, "scale must be positive, got %g", scale)
	case width*scale > maxExtent || height*scale > maxExtent:
		return New(ErrCodeInvalidInput, "canvas too large (max %d pixels per side)", maxExtent)
	}
	return nil
}
