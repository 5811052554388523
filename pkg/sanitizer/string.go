package sanitizer

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// angleBrackets is the character set removed from every user supplied string.
const angleBrackets = "<>"

// Apply runs value through transforms in order.
func Apply[T any](value T, transforms ...func(T) T) T {
	for _, transform := range transforms {
		value = transform(value)
	}
	return value
}

// Compose builds a reusable pipeline out of transforms.
func Compose[T any](transforms ...func(T) T) func(T) T {
	return func(value T) T {
		return Apply(value, transforms...)
	}
}

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// RemoveChars removes every occurrence of any rune in chars from s.
func RemoveChars(s, chars string) string {
	if s == "" || chars == "" {
		return s
	}
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(chars, r) {
			return -1
		}
		return r
	}, s)
}

// StripAngleBrackets removes all '<' and '>' characters.
func StripAngleBrackets(s string) string {
	return RemoveChars(s, angleBrackets)
}

// MaxLength truncates s to at most maxLen runes.
func MaxLength(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}

// NormalizeUnicode converts s to Unicode normalization form C so visually
// identical inputs compare equal.
func NormalizeUnicode(s string) string {
	return norm.NFC.String(s)
}

// Email trims and strips the address. Case is preserved because listing
// filters match addresses exactly.
func Email(email string) string {
	return Apply(email, Trim, StripAngleBrackets, NormalizeUnicode)
}
