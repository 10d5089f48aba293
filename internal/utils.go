package internal

import (
	"strings"
	"unicode"
)

// SanitizeFilename creates a safe filename from a string.
// Letters and digits of any script are kept, everything else becomes '_'.
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if isAlphaNumeric(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "flashcards"
	}
	return b.String()
}

// isAlphaNumeric checks if a rune is a letter or a digit
func isAlphaNumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
