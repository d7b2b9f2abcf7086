package typeexpr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed is returned when a type expression is structurally invalid.
var ErrMalformed = errors.New("malformed type expression")

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokOpenBracket
	tokCloseBracket
	tokQuestion
	tokPipe
	tokOpenParen
	tokCloseParen
)

type token struct {
	text string
	kind tokenKind
	pos  int
}

// Parse parses an annotation type expression.
//
//	Union   := Postfix ("|" Postfix)*
//	Postfix := Primary ("[]" | "?")*
//	Primary := Ident | "(" Union ")"
//
// The array marker binds tighter than "|". A union adopts the optional flag
// of its final member, so the result is optional exactly when the text ends
// with "?". An optional marker directly before ")" is rejected; write it
// after the group instead.
//
// Identifiers are opaque: any run of characters other than blanks and the
// operators above, so "table<string, number>", "fun(x: T): T", "{}" and
// quoted literals each parse as one named type. Brackets and quotes inside an
// identifier must balance.
func Parse(text string) (*Expr, error) {
	toks, err := lex(text)
	if err != nil {
		return nil, err
	}

	p := &parser{text: text, toks: toks}

	e, err := p.union()
	if err != nil {
		return nil, err
	}

	if t := p.peek(); t.kind != tokEOF {
		return nil, p.errorf(t, "unexpected %q", t.text)
	}

	return e, nil
}

// MustParse is like [Parse] but panics on error.
func MustParse(text string) *Expr {
	e, err := Parse(text)
	if err != nil {
		panic(err)
	}

	return e
}

type parser struct {
	text string
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}

	return t
}

func (p *parser) errorf(t token, format string, args ...any) error {
	return fmt.Errorf("%w: %q at offset %d: %s", ErrMalformed, p.text, t.pos, fmt.Sprintf(format, args...))
}

func (p *parser) union() (*Expr, error) {
	first, err := p.postfix()
	if err != nil {
		return nil, err
	}

	if p.peek().kind != tokPipe {
		return first, nil
	}

	u := &Expr{Kind: KindUnion}
	u.add(first)

	for p.peek().kind == tokPipe {
		p.next()

		m, err := p.postfix()
		if err != nil {
			return nil, err
		}

		u.add(m)
	}

	u.Optional = u.Members[len(u.Members)-1].Optional

	return u, nil
}

// add appends m to the union, splicing in the members of a nested union. An
// optional nested union passes its marker to its last member.
func (u *Expr) add(m *Expr) {
	if m.Kind != KindUnion {
		u.Members = append(u.Members, m)

		return
	}

	if m.Optional {
		m.Members[len(m.Members)-1].Optional = true
	}

	u.Members = append(u.Members, m.Members...)
}

func (p *parser) postfix() (*Expr, error) {
	e, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		switch t := p.peek(); t.kind {
		case tokOpenBracket:
			p.next()

			if p.peek().kind != tokCloseBracket {
				return nil, p.errorf(t, "unmatched array marker")
			}

			p.next()

			e = &Expr{Kind: KindArray, Element: e}

		case tokQuestion:
			p.next()

			if e.Optional {
				return nil, p.errorf(t, "repeated optional marker")
			}

			e.Optional = true

		default:
			return e, nil
		}
	}
}

func (p *parser) primary() (*Expr, error) {
	t := p.next()

	switch t.kind {
	case tokIdent:
		return Named(t.text), nil

	case tokOpenParen:
		e, err := p.union()
		if err != nil {
			return nil, err
		}

		c := p.next()
		if c.kind != tokCloseParen {
			return nil, p.errorf(t, "unmatched parenthesis")
		}

		if p.toks[p.pos-2].kind == tokQuestion {
			return nil, p.errorf(c, "optional marker inside group")
		}

		return e, nil

	case tokEOF:
		return nil, p.errorf(t, "expected type")

	case tokCloseBracket:
		return nil, p.errorf(t, "unmatched array marker")
	}

	return nil, p.errorf(t, "unexpected %q", t.text)
}

func lex(text string) ([]token, error) {
	var toks []token

	for i := 0; i < len(text); {
		c := text[i]

		if isSpace(c) {
			i++

			continue
		}

		if kind, ok := punct[c]; ok {
			toks = append(toks, token{kind: kind, text: string(c), pos: i})
			i++

			continue
		}

		end, err := identEnd(text, i)
		if err != nil {
			return nil, err
		}

		toks = append(toks, token{kind: tokIdent, text: text[i:end], pos: i})
		i = end
	}

	return append(toks, token{kind: tokEOF, pos: len(text)}), nil
}

// identEnd returns the end offset of the identifier starting at start. At
// nesting depth zero an identifier stops at a blank or an operator; inside
// brackets or quotes everything up to the matching closer belongs to it.
// Blanks after a ":" do not end it.
func identEnd(text string, start int) (int, error) {
	var stack []byte

	i := start
	for i < len(text) {
		c := text[i]

		switch {
		case c == '"' || c == '\'':
			j := strings.IndexByte(text[i+1:], c)
			if j < 0 {
				return 0, fmt.Errorf("%w: %q at offset %d: unterminated quote", ErrMalformed, text, i)
			}

			i += j + 2

			continue

		case closers[c] != 0:
			stack = append(stack, closers[c])

		case len(stack) > 0 && c == stack[len(stack)-1]:
			stack = stack[:len(stack)-1]

		case len(stack) > 0:
			// Anything goes inside brackets.

		case isSpace(c) && text[i-1] == ':':
			// Return type of a function signature.
			j := i
			for j < len(text) && isSpace(text[j]) {
				j++
			}

			if j == len(text) || isPunct(text[j]) {
				return i, nil
			}

			i = j

			continue

		case isSpace(c) || isPunct(c):
			return i, nil

		case c == '>' || c == '}':
			return 0, fmt.Errorf("%w: %q at offset %d: unmatched %q", ErrMalformed, text, i, string(c))
		}

		i++
	}

	if len(stack) > 0 {
		return 0, fmt.Errorf("%w: %q: unclosed %q", ErrMalformed, text, string(openerOf(stack[len(stack)-1])))
	}

	return i, nil
}

var punct = map[byte]tokenKind{
	'[': tokOpenBracket,
	']': tokCloseBracket,
	'?': tokQuestion,
	'|': tokPipe,
	'(': tokOpenParen,
	')': tokCloseParen,
}

// closers maps the brackets that may nest inside an identifier to their
// closing byte. A "(" nests only once an identifier has started, so
// "fun(x)" is one identifier while "(a|b)" is a group.
var closers = map[byte]byte{
	'<': '>',
	'{': '}',
	'(': ')',
}

func openerOf(closer byte) byte {
	for o, c := range closers {
		if c == closer {
			return o
		}
	}

	return closer
}

func isPunct(c byte) bool {
	_, ok := punct[c]

	return ok
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}
