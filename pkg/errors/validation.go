package errors

import (
	"strings"
	"unicode"
)

// MaxLabelLength bounds node labels read from input records.
const MaxLabelLength = 256

// ValidateLabel checks a node label read from untrusted input. Labels end up
// inside TikZ and DOT documents, so control characters are rejected.
func ValidateLabel(label string) error {
	if len(label) > MaxLabelLength {
		return New(ErrCodeInvalidLabel, "label too long (max %d characters)", MaxLabelLength)
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLabel, "label contains invalid control characters")
		}
	}
	return nil
}

// ValidateDelimiter checks a tree delimiter token. It must be a non-empty
// token without whitespace, since records are split on whitespace.
func ValidateDelimiter(delim string) error {
	if delim == "" {
		return New(ErrCodeInvalidConfig, "delimiter cannot be empty")
	}
	if strings.IndexFunc(delim, unicode.IsSpace) >= 0 {
		return New(ErrCodeInvalidConfig, "delimiter cannot contain whitespace: %q", delim)
	}
	return nil
}

// ValidateRedisURL checks that a cache URL uses a redis scheme.
func ValidateRedisURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "redis URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "redis://") && !strings.HasPrefix(rawURL, "rediss://") {
		return New(ErrCodeInvalidConfig, "redis URL must use redis or rediss scheme")
	}
	return nil
}

// ValidateOutputPath checks an output file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Maximum length of 500 characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output path contains invalid characters")
		}
	}
	return nil
}
