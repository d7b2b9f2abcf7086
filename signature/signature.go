// Package signature recognizes Lua function definitions on a single source
// line.
//
// Two forms are matched, in order:
//
//	[local] function Module.sub.name(a, b)
//	[local] Module.sub.name = function(a, b)
//
// A function declared local is [VisibilityPrivate]; one whose simple name
// starts with a double underscore is [VisibilityInternal]. Everything else
// is [VisibilityPublic].
package signature

import (
	"regexp"
	"strings"
)

// Visibility classifies who a function is meant for.
type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityPrivate  Visibility = "private"
	VisibilityInternal Visibility = "internal"
)

// InternalPrefix marks a function as internal by naming convention.
const InternalPrefix = "__"

var (
	declarationRegex = regexp.MustCompile(`^\s*(local\s+)?function\s+([A-Za-z_][\w.:]*)\s*\(([^)]*)\)`)
	assignmentRegex  = regexp.MustCompile(`^\s*(local\s+)?([A-Za-z_][\w.:]*)\s*=\s*function\s*\(([^)]*)\)`)
)

// Signature is a function definition found on one line.
type Signature struct {
	QualifiedName string     `json:"qualifiedName"           yaml:"qualifiedName"`
	SimpleName    string     `json:"simpleName"              yaml:"simpleName"`
	RawParameters string     `json:"rawParameters,omitempty" yaml:"rawParameters,omitempty"`
	Visibility    Visibility `json:"visibility"              yaml:"visibility"`
}

// IsPublic reports whether the function is neither local nor internal.
func (s Signature) IsPublic() bool {
	return s.Visibility == VisibilityPublic
}

// IsMethod reports whether the function is declared with method syntax
// ("Class:name"), taking an implicit self.
func (s Signature) IsMethod() bool {
	i := strings.LastIndexAny(s.QualifiedName, ".:")

	return i >= 0 && s.QualifiedName[i] == ':'
}

// Params splits the raw parameter list into trimmed names.
func (s Signature) Params() []string {
	var out []string

	for p := range strings.SplitSeq(s.RawParameters, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}

// Extract returns the function defined on line, if any.
//
// The declaration form is tried first. When it yields a public function the
// assignment form is not attempted, so one definition is never counted
// twice.
func Extract(line string) (Signature, bool) {
	decl, declOK := match(declarationRegex, line)
	if declOK && decl.IsPublic() {
		return decl, true
	}

	if assign, ok := match(assignmentRegex, line); ok {
		return assign, true
	}

	return decl, declOK
}

// SimpleName returns the segment of name after its last "." or ":"
// qualifier, or name itself when unqualified.
func SimpleName(name string) string {
	return name[strings.LastIndexAny(name, ".:")+1:]
}

func match(re *regexp.Regexp, line string) (Signature, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return Signature{}, false
	}

	name := strings.TrimSpace(m[2])
	sig := Signature{
		QualifiedName: name,
		SimpleName:    SimpleName(name),
		RawParameters: strings.TrimSpace(m[3]),
		Visibility:    VisibilityPublic,
	}

	switch {
	case m[1] != "":
		sig.Visibility = VisibilityPrivate
	case strings.HasPrefix(sig.SimpleName, InternalPrefix):
		sig.Visibility = VisibilityInternal
	}

	return sig, true
}
