// Package matchers contains the pure text-matching logic of the support
// pipeline: normalization, spelling correction, and the keyword tables.
// Everything here is deterministic and free of I/O.
package matchers

import "strings"

// Normalize lowercases text, strips every character outside lowercase
// alphanumerics and whitespace, and collapses whitespace runs to single
// spaces. Total and idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
