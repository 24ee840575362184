package pathmatch

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Style identifies the convention a matched path was written in
type Style int

const (
	// POSIX paths start with a slash
	POSIX Style = iota
	// Drive paths start with an uppercase drive letter, a colon and a separator
	Drive
	// Home paths start with a tilde and a separator
	Home
)

// String returns the string representation of the style
func (s Style) String() string {
	switch s {
	case POSIX:
		return "posix"
	case Drive:
		return "drive"
	case Home:
		return "home"
	default:
		return "unknown"
	}
}

// Match is a half-open byte range [Start, End) of a path run in the input
type Match struct {
	Start int
	End   int
	Style Style
}

// Text returns the matched slice of s
func (m Match) Text(s string) string {
	return s[m.Start:m.End]
}

// segmentPunct lists the non alphanumeric characters allowed inside a segment
const segmentPunct = " +-_.$@#%&()[],=!~"

// Find returns the first path run that starts at or after from.
func Find(s string, from int) (Match, bool) {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(s); i++ {
		if m, ok := matchAt(s, i); ok {
			return m, true
		}
	}
	return Match{}, false
}

// FindAll returns every path run in s, left to right and non-overlapping.
func FindAll(s string) []Match {
	var matches []Match
	for i := 0; i < len(s); {
		m, ok := Find(s, i)
		if !ok {
			break
		}
		matches = append(matches, m)
		i = m.End
	}
	return matches
}

// IsPath reports whether s is exactly one path run
func IsPath(s string) bool {
	m, ok := matchAt(s, 0)
	return ok && m.End == len(s)
}

// matchAt lexes a path starting exactly at i
func matchAt(s string, i int) (Match, bool) {
	j := i
	style, ok := rootAt(s, j)
	for !ok {
		g := glueLen(s, j)
		if g == 0 {
			return Match{}, false
		}
		j += g
		style, ok = rootAt(s, j)
	}

	j += prefixLen(style)
	j += separatorLen(s, j)

	// the root must be followed by a segment, and that segment cannot open
	// with whitespace: "a / b" is a division, not a path
	if r, _ := utf8.DecodeRuneInString(s[j:]); unicode.IsSpace(r) {
		return Match{}, false
	}
	seg := segmentLen(s, j)
	if seg == 0 {
		return Match{}, false
	}
	j += seg

	for {
		sep := separatorLen(s, j)
		if sep == 0 {
			break
		}
		seg = segmentLen(s, j+sep)
		if seg == 0 {
			// trailing separators close the path
			j += sep
			break
		}
		j += sep + seg
	}

	return Match{Start: i, End: j, Style: style}, true
}

// rootAt reports whether a path root starts at i
func rootAt(s string, i int) (Style, bool) {
	if i >= len(s) {
		return 0, false
	}

	switch c := s[i]; {
	case c == '/':
		return POSIX, true
	case isDriveLetter(c):
		if i+1 < len(s) && s[i+1] == ':' && separatorLen(s, i+2) > 0 {
			return Drive, true
		}
	case c == '~':
		if separatorLen(s, i+1) > 0 {
			return Home, true
		}
	}

	return 0, false
}

// prefixLen is the number of bytes a root spends before its first separator
func prefixLen(style Style) int {
	switch style {
	case Drive:
		return 2
	case Home:
		return 1
	default:
		return 0
	}
}

// glueLen returns the length of a drive or tilde prefix at i that is not a
// root by itself. Such prefixes stick to the path that follows them, so
// "X:Y:\dir" lexes as one run instead of leaving "X:" behind.
func glueLen(s string, i int) int {
	if i >= len(s) {
		return 0
	}
	if isDriveLetter(s[i]) && i+1 < len(s) && s[i+1] == ':' {
		return 2
	}
	if s[i] == '~' {
		return 1
	}
	return 0
}

func isDriveLetter(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

// separatorLen returns the byte length of the separator run at i, or 0.
// Empty segments collapse into the run, so "a//b" and `a\\b` hold a single
// separator each.
func separatorLen(s string, i int) int {
	j := i
	for j < len(s) && (s[j] == '/' || s[j] == '\\') {
		j++
	}
	return j - i
}

// segmentLen returns the byte length of the segment at i, or 0
func segmentLen(s string, i int) int {
	j := i
	for j < len(s) {
		r, size := utf8.DecodeRuneInString(s[j:])
		if !isSegmentRune(r) {
			break
		}
		j += size
	}
	return j - i
}

func isSegmentRune(r rune) bool {
	if r == utf8.RuneError {
		return false
	}
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	return strings.ContainsRune(segmentPunct, r)
}
