package comment

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/hbollon/go-edlib"

	"go.jacobcolvin.com/luadoc/textutil"
	"go.jacobcolvin.com/luadoc/typeexpr"
)

var (
	directiveRegex = regexp.MustCompile(`^@(\w+)`)

	// Markdown code fence with an optional info string.
	fenceRegex = regexp.MustCompile("^```[\\w+-]*$")

	// Tags with dedicated parsers.
	knownDirectives = []string{"param", "return", "returns", "generic"}
)

// ParseParam parses "@param <name> <type> [description...]". A trailing "?"
// on the name marks the type optional. ok is false when body is not a
// @param directive or lacks a name or type; err is set when the type is
// malformed.
func ParseParam(body string) (Param, bool, error) {
	rest, ok := cutTag(body, "param")
	if !ok {
		return Param{}, false, nil
	}

	name, rest := textutil.NextField(rest)
	typ, desc := textutil.NextBalancedField(rest)

	if name == "" || typ == "" {
		return Param{}, false, nil
	}

	optional := false
	if trimmed := strings.TrimSuffix(name, "?"); trimmed != name && trimmed != "" {
		name = trimmed
		optional = true
	}

	t, err := typeexpr.Parse(typ)
	if err != nil {
		return Param{}, false, fmt.Errorf("@param %s: %w", name, err)
	}

	if optional {
		t.Optional = true
	}

	return Param{Name: name, Type: t, Description: desc}, true, nil
}

// ParseReturn parses "@return <type> [description...]" ("@returns" is
// accepted as an alias). The type may be a union.
func ParseReturn(body string) (*typeexpr.Expr, string, bool, error) {
	rest, ok := cutTag(body, "return")
	if !ok {
		rest, ok = cutTag(body, "returns")
	}

	if !ok {
		return nil, "", false, nil
	}

	typ, desc := textutil.NextBalancedField(rest)
	if typ == "" {
		return nil, "", false, nil
	}

	t, err := typeexpr.Parse(typ)
	if err != nil {
		return nil, "", false, fmt.Errorf("@return: %w", err)
	}

	return t, desc, true, nil
}

// ParseGeneric parses "@generic <Name>" with an optional ": <constraint>".
func ParseGeneric(body string) (Generic, bool, error) {
	rest, ok := cutTag(body, "generic")
	if !ok {
		return Generic{}, false, nil
	}

	head, constraint, _ := strings.Cut(rest, ":")

	name, _ := textutil.NextField(head)
	if name == "" {
		return Generic{}, false, nil
	}

	g := Generic{Name: name}

	constraint = strings.TrimSpace(constraint)
	if constraint == "" {
		return g, true, nil
	}

	c, _ := textutil.NextBalancedField(constraint)

	t, err := typeexpr.Parse(c)
	if err != nil {
		return Generic{}, false, fmt.Errorf("@generic %s: %w", name, err)
	}

	g.Constraint = t

	return g, true, nil
}

// IsDirective reports whether body is an "@<word>" directive of any kind.
func IsDirective(body string) bool {
	return directiveRegex.MatchString(body)
}

// DirectiveName returns the tag of an "@<word>" directive, without the "@".
func DirectiveName(body string) string {
	m := directiveRegex.FindStringSubmatch(body)
	if m == nil {
		return ""
	}

	return m[1]
}

// IsFence reports whether body is an example fence marker: three backticks
// optionally followed by a language tag, ignoring surrounding whitespace.
func IsFence(body string) bool {
	return fenceRegex.MatchString(strings.TrimSpace(body))
}

// Suggest returns the known directive closest to tag when it is a likely
// misspelling (edit distance of at most two). Known tags get no suggestion.
func Suggest(tag string) (string, bool) {
	if slices.Contains(knownDirectives, tag) {
		return "", false
	}

	best, bestDist := "", 3

	for _, known := range knownDirectives {
		d := edlib.LevenshteinDistance(tag, known)
		if d > 0 && d < bestDist {
			best, bestDist = known, d
		}
	}

	return best, best != ""
}

// cutTag returns the text after "@<tag>" when body starts with that exact
// directive.
func cutTag(body, tag string) (string, bool) {
	rest, ok := strings.CutPrefix(body, "@"+tag)
	if !ok {
		return "", false
	}

	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return "", false
	}

	return strings.TrimSpace(rest), true
}
