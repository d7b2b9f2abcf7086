// Package textutil holds the small string helpers used by the comment
// scanner: blank checks, prefix-symbol counting, note formatting and
// whitespace tokenizing.
package textutil

import (
	"strings"
	"unicode"
)

// IsBlank reports whether s is empty or contains only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// TrimTrailing strips trailing whitespace (including a stray CR).
func TrimTrailing(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// CountPrefix returns the number of consecutive sym bytes at the start of s.
func CountPrefix(s string, sym byte) int {
	n := 0
	for n < len(s) && s[n] == sym {
		n++
	}

	return n
}

// FormatNote renders text as a Markdown list item nested at depth. Depth 1
// is a top-level item; each extra level indents by two spaces. Depths below
// 1 are treated as 1.
func FormatNote(depth int, text string) string {
	if depth < 1 {
		depth = 1
	}

	return strings.Repeat("  ", depth-1) + "- " + text
}

// CutListMarker strips a leading run of "*" or "-" list symbols from s when
// the run is followed by a space. n is the length of the run, or 0 when s
// does not start with a list marker.
func CutListMarker(s string) (string, int) {
	if s == "" || (s[0] != '*' && s[0] != '-') {
		return s, 0
	}

	n := CountPrefix(s, s[0])
	if n >= len(s) || s[n] != ' ' {
		return s, 0
	}

	return strings.TrimLeft(s[n:], " "), n
}

// NextField splits s into its first whitespace-delimited field and the
// trimmed remainder. Both are empty when s is blank.
func NextField(s string) (string, string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}

	return s[:i], strings.TrimSpace(s[i:])
}

// NextBalancedField is like [NextField], but whitespace inside (), <>, {},
// [] or quotes does not end the field, nor does whitespace after a ":" so
// that "fun(x: T): R" stays whole. An unbalanced field runs to the end of s.
func NextBalancedField(s string) (string, string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	depth := 0

	var quote byte

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case strings.IndexByte("(<{[", c) >= 0:
			depth++
		case strings.IndexByte(")>}]", c) >= 0:
			depth = max(depth-1, 0)
		case depth == 0 && unicode.IsSpace(rune(c)):
			if i > 0 && s[i-1] == ':' {
				for i+1 < len(s) && unicode.IsSpace(rune(s[i+1])) {
					i++
				}

				continue
			}

			return s[:i], strings.TrimSpace(s[i:])
		}
	}

	return s, ""
}

// SplitLines splits content on LF, dropping CR from CRLF endings. A final
// line break does not produce a trailing empty line.
func SplitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	s := strings.TrimSuffix(string(content), "\n")
	lines := strings.Split(s, "\n")

	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}
