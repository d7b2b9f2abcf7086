package comment

import "go.jacobcolvin.com/luadoc/typeexpr"

// Param documents one function parameter.
type Param struct {
	Type        *typeexpr.Expr `json:"type"                  yaml:"type"`
	Name        string         `json:"name"                  yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
}

// Return documents a function's return value.
type Return struct {
	Type        *typeexpr.Expr `json:"type"                  yaml:"type"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
}

// Generic documents a generic type parameter and its optional constraint.
type Generic struct {
	Constraint *typeexpr.Expr `json:"constraint,omitempty" yaml:"constraint,omitempty"`
	Name       string         `json:"name"                 yaml:"name"`
}

// Record is the documentation collected from one annotation comment block.
//
// Description is the first free-text line of the block. Every later
// free-text line is kept in Notes, formatted as a nested Markdown list item;
// lines inside example fences are kept verbatim, fences included.
type Record struct {
	Return      *Return   `json:"return,omitempty"      yaml:"return,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Params      []Param   `json:"params,omitempty"      yaml:"params,omitempty"`
	Generics    []Generic `json:"generics,omitempty"    yaml:"generics,omitempty"`
	Notes       []string  `json:"notes,omitempty"       yaml:"notes,omitempty"`
}

// Param returns the documented parameter with the given name.
func (r *Record) Param(name string) (Param, bool) {
	for _, p := range r.Params {
		if p.Name == name {
			return p, true
		}
	}

	return Param{}, false
}

// resolveGenerics re-kinds named type references that match a generic
// declared anywhere in the record. Declarations may follow their uses.
func (r *Record) resolveGenerics() {
	if len(r.Generics) == 0 {
		return
	}

	names := make(map[string]bool, len(r.Generics))
	for _, g := range r.Generics {
		names[g.Name] = true
	}

	mark := func(e *typeexpr.Expr) {
		if e.Kind == typeexpr.KindNamed && names[e.Name] {
			e.Kind = typeexpr.KindGeneric
		}
	}

	for _, p := range r.Params {
		p.Type.Walk(mark)
	}

	if r.Return != nil {
		r.Return.Type.Walk(mark)
	}

	for _, g := range r.Generics {
		g.Constraint.Walk(mark)
	}
}
