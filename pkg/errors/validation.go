package errors

import (
	"strings"
	"unicode"
)

// ValidateSignature validates a signature page count.
// A signature is the number of pages gathered and folded together; psbook
// requires it to be a multiple of 4. Zero is valid and means the whole
// document is treated as a single signature.
func ValidateSignature(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidSignature, "signature size cannot be negative")
	}
	if n%4 != 0 {
		return New(ErrCodeInvalidSignature, "signature size must be a multiple of 4, got %d", n)
	}
	return nil
}

// ValidatePaperName validates a paper size name before it is handed to the
// system paper database or an external tool argument.
//
// The validation rules are intentionally conservative:
//   - No control characters or null bytes
//   - No path separators or shell metacharacters
//   - Maximum length of 64 characters
//
// An empty name is valid and selects the system default paper size.
func ValidatePaperName(name string) error {
	if name == "" {
		return nil
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidPaper, "paper name too long (max 64 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPaper, "paper name contains invalid control characters")
		}
	}

	dangerous := []string{"/", "\\", "..", ";", "|", "&", "$", "`", " "}
	for _, pattern := range dangerous {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPaper, "paper name contains invalid sequence %q", pattern)
		}
	}

	return nil
}
