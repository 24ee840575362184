// Package rewrite substitutes absolute paths found in text with a
// destination directory.
package rewrite

import (
	"strings"

	"github.com/arthur-debert/nexpatch/pkg/pathmatch"
)

// Rewrite replaces every path run in text with the literal destination.
// Text without any path run is returned unchanged.
//
// The result is stable under a second pass with the same destination as long
// as the destination is itself a single path run (see pathmatch.IsPath).
func Rewrite(text, destination string) string {
	matches := pathmatch.FindAll(text)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + len(matches)*len(destination))

	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m.Start])
		b.WriteString(destination)
		last = m.End
	}
	b.WriteString(text[last:])

	return b.String()
}

// Count returns the number of path runs Rewrite would replace in text
func Count(text string) int {
	return len(pathmatch.FindAll(text))
}

// EscapeBackslashes doubles every backslash in s.
//
// Destinations built from Windows paths are escaped once before being handed
// to Rewrite, which then substitutes them verbatim.
func EscapeBackslashes(s string) string {
	return strings.ReplaceAll(s, `\`, `\\`)
}
