// Package stringtest provides helpers for writing multi-line test inputs
// inline with the surrounding Go indentation.
package stringtest

import "strings"

// Input removes one leading newline and a trailing blank line from s, then
// strips the indentation shared by all non-blank lines. Whitespace-only lines
// become empty.
//
// Example:
//
//	src := stringtest.Input(`
//		--- Adds two numbers
//		function add(a, b) end
//	`) // -> "--- Adds two numbers\nfunction add(a, b) end"
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")

	// Drop the final line break along with any closing-backtick indentation.
	if i := strings.LastIndex(s, "\n"); i >= 0 && strings.TrimSpace(s[i+1:]) == "" {
		s = s[:i]
	}

	lines := strings.Split(s, "\n")
	indent := commonIndent(lines)

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""

			continue
		}

		lines[i] = line[len(indent):]
	}

	return strings.Join(lines, "\n")
}

// Lines is [Input] split into individual lines.
func Lines(s string) []string {
	in := Input(s)
	if in == "" {
		return nil
	}

	return strings.Split(in, "\n")
}

// JoinLF joins multiple strings with LF line endings.
// Use this to construct expected test output with explicit line endings.
func JoinLF(ss ...string) string {
	return strings.Join(ss, "\n")
}

// JoinCRLF joins multiple strings with CRLF line endings.
func JoinCRLF(ss ...string) string {
	return strings.Join(ss, "\r\n")
}

// commonIndent returns the longest run of leading blanks shared by every
// non-blank line.
func commonIndent(lines []string) string {
	var (
		indent string
		found  bool
	)

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		lead := line[:len(line)-len(strings.TrimLeft(line, " \t"))]

		if !found {
			indent = lead
			found = true

			continue
		}

		for !strings.HasPrefix(lead, indent) {
			indent = indent[:len(indent)-1]
		}
	}

	return indent
}
