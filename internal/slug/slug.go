// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strings"
)

var (
	invalidChars   = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
	hyphenRuns     = regexp.MustCompile(`-+`)
)

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Make lowercases the input, strips characters outside [a-z0-9 -],
// collapses whitespace runs to single hyphens, collapses hyphen runs,
// and truncates to maxLen.
func Make(s string, maxLen int) string {
	out := strings.ToLower(strings.TrimSpace(s))
	out = invalidChars.ReplaceAllString(out, "")
	out = whitespaceRuns.ReplaceAllString(out, "-")
	out = hyphenRuns.ReplaceAllString(out, "-")
	if len(out) > maxLen {
		out = out[:maxLen]
	}
	return out
}

// RandomSuffix returns n random lowercase-alphanumeric characters for
// collision resolution.
func RandomSuffix(n int) string {
	var b strings.Builder
	b.Grow(n)
	max := big.NewInt(int64(len(suffixAlphabet)))
	for range n {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failing means the process is in far worse
			// trouble than a slug collision; fall back to 'a'.
			b.WriteByte('a')
			continue
		}
		b.WriteByte(suffixAlphabet[idx.Int64()])
	}
	return b.String()
}

// WithSuffix appends a hyphen-separated random suffix of n characters.
func WithSuffix(base string, n int) string {
	return base + "-" + RandomSuffix(n)
}
