package helpers

import (
	"strings"
)

// Concatenate multiple strings into one.
func ConcatStrings(values ...string) string {
	var builder strings.Builder

	for _, value := range values {
		builder.WriteString(value)
	}

	return builder.String()
}

// Normalize product URL before lookup or insert.
func NormalizeUrl(url string) string {
	return strings.ToLower(strings.TrimSpace(url))
}

// Shorten text to limit runes, appending ellipsis when truncated.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}

	return ConcatStrings(string(runes[:limit]), "...")
}
