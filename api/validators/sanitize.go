package validators

import (
	"strings"
	"unicode/utf8"
)

// SanitizeString trims surrounding whitespace and caps the result at maxChars
// runes. Invalid UTF-8 sequences are replaced so callers always get valid text.
func SanitizeString(input string, maxChars int) string {
	trimmed := strings.TrimSpace(strings.ToValidUTF8(input, "�"))
	if maxChars <= 0 || utf8.RuneCountInString(trimmed) <= maxChars {
		return trimmed
	}
	cut := 0
	for i := 0; i < maxChars; i++ {
		_, size := utf8.DecodeRuneInString(trimmed[cut:])
		cut += size
	}
	return strings.TrimSpace(trimmed[:cut])
}
