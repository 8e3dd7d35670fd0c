package string

import (
	"strings"
	"unicode"
)

// TrimStrings trims whitespace from every string in place. Service façades
// call this on user-supplied arguments before building request payloads.
func TrimStrings(ss ...*string) {
	for _, s := range ss {
		*s = strings.TrimSpace(*s)
	}
}

// Coalesce returns the first non-blank candidate, or fallback when all are blank.
func Coalesce(fallback string, candidates ...string) string {
	for _, c := range candidates {
		if strings.TrimSpace(c) != "" {
			return c
		}
	}
	return fallback
}

// TitleWord upper-cases the first rune and lower-cases the rest of a single
// word. Used for status display labels ("pending" -> "Pending").
func TitleWord(s string) string {
	runes := []rune(strings.ToLower(strings.TrimSpace(s)))
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func ToSnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 &&
			(unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
