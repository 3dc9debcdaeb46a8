// Package slug derives URL-safe slugs from display names.
package slug

import (
	"strings"
	"unicode"
)

// Make converts a name into a slug: lowercase, runs of anything that is not
// a letter or digit collapse into a single hyphen, leading and trailing
// hyphens are stripped. The result is deterministic for a given input.
func Make(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	pendingHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	return b.String()
}

// IsValid reports whether s is already in canonical slug form.
func IsValid(s string) bool {
	return s != "" && s == Make(s)
}
