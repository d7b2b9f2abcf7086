package typeexpr

import "strings"

// Kind identifies the shape of an [Expr].
type Kind string

const (
	KindNamed   Kind = "named"
	KindArray   Kind = "array"
	KindUnion   Kind = "union"
	KindGeneric Kind = "generic"
)

// Expr is a parsed type expression.
//
// Name is set for [KindNamed] and [KindGeneric]. Element is set for
// [KindArray]. Members holds two or more non-union children for [KindUnion].
// Optional may decorate any kind.
type Expr struct {
	Element  *Expr   `json:"element,omitempty"  yaml:"element,omitempty"`
	Kind     Kind    `json:"kind"               yaml:"kind"`
	Name     string  `json:"name,omitempty"     yaml:"name,omitempty"`
	Members  []*Expr `json:"members,omitempty"  yaml:"members,omitempty"`
	Optional bool    `json:"optional,omitempty" yaml:"optional,omitempty"`
}

// Named returns a [KindNamed] expression.
func Named(name string) *Expr {
	return &Expr{Kind: KindNamed, Name: name}
}

// Base returns the identifier at the core of e: the name of a named or
// generic expression, or the base of an array's innermost element. Unions
// have no single base and return "".
func (e *Expr) Base() string {
	switch e.Kind {
	case KindNamed, KindGeneric:
		return e.Name
	case KindArray:
		return e.Element.Base()
	}

	return ""
}

// IsArray reports whether e is an array expression.
func (e *Expr) IsArray() bool {
	return e.Kind == KindArray
}

// Walk calls fn for e and every expression nested inside it, parents first.
func (e *Expr) Walk(fn func(*Expr)) {
	if e == nil {
		return
	}

	fn(e)
	e.Element.Walk(fn)

	for _, m := range e.Members {
		m.Walk(fn)
	}
}

// String renders e back to annotation syntax. Redundant whitespace from the
// original text is not preserved.
func (e *Expr) String() string {
	var sb strings.Builder

	e.write(&sb)

	return sb.String()
}

func (e *Expr) write(sb *strings.Builder) {
	switch e.Kind {
	case KindArray:
		if e.Element.Kind == KindUnion {
			sb.WriteByte('(')
			e.Element.write(sb)
			sb.WriteByte(')')
		} else {
			e.Element.write(sb)
		}

		sb.WriteString("[]")

	case KindUnion:
		last := e.Members[len(e.Members)-1]
		wrap := e.Optional && !last.Optional

		if wrap {
			sb.WriteByte('(')
		}

		for i, m := range e.Members {
			if i > 0 {
				sb.WriteByte('|')
			}

			m.write(sb)
		}

		if wrap {
			sb.WriteString(")?")
		}

		return

	default:
		sb.WriteString(e.Name)
	}

	if e.Optional {
		sb.WriteByte('?')
	}
}
