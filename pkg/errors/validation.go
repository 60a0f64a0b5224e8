package errors

import (
	"strings"
	"unicode"
)

// maxLayerNameLength bounds layer names accepted from files and the API.
const maxLayerNameLength = 256

// ValidateLayerName validates a layer name read from a stackfile or request.
// Layer names end up as CSS custom property names, DOT identifiers and map
// keys, so the rules are conservative:
//   - No empty or whitespace-only names
//   - No control characters
//   - Maximum length of 256 bytes
//
// The layers package itself only rejects empty names.
func ValidateLayerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidLayer, "layer name cannot be empty")
	}

	if len(name) > maxLayerNameLength {
		return New(ErrCodeInvalidLayer, "layer name too long (max %d characters)", maxLayerNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLayer, "layer name %q contains invalid control characters", name)
		}
	}

	return nil
}

// ValidateFormat checks that format is one of allowed. An empty format is
// accepted so callers can fall back to their default.
func ValidateFormat(format string, allowed []string) error {
	if format == "" {
		return nil
	}
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(allowed, ", "))
}
