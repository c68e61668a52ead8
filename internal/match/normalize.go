package match

import (
	"strings"
	"unicode"
)

// NormalizeModelName converts a raw v3 model identifier into the
// human-readable form used by mapping definitions.
// The pipeline:
//  1. Drop the CRM class suffix after the first dot ("ACTOR.E39" -> "ACTOR").
//  2. Replace underscores with spaces.
//  3. Capitalize each word ("HERITAGE RESOURCE" -> "Heritage Resource").
func NormalizeModelName(raw string) string {
	name := raw
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}

	name = strings.ReplaceAll(name, "_", " ")

	return capWords(name)
}

// NormalizeForCompare lowercases and strips separators so that
// "Heritage Resource", "HERITAGE_RESOURCE" and "heritage resource"
// compare equal.
func NormalizeForCompare(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if r == '_' || r == '-' || r == ' ' {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// capWords capitalizes the first letter of each space-separated word and
// lowercases the rest, collapsing repeated spaces.
func capWords(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		runes := []rune(strings.ToLower(f))
		runes[0] = unicode.ToUpper(runes[0])
		fields[i] = string(runes)
	}

	return strings.Join(fields, " ")
}
