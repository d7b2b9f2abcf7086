package comment

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.jacobcolvin.com/luadoc/textutil"
)

// ErrInternal indicates the scanner reached a state it should never be in,
// such as processing a directive with no open record.
var ErrInternal = errors.New("internal parser error")

// PrefixLen is the number of dashes that open an annotation comment line.
const PrefixLen = 3

type state int

const (
	stateOutside state = iota
	stateInComment
)

// Scanner is a line-at-a-time state machine that collects "---" annotation
// comment blocks into [Record] values.
//
// A Scanner is owned by a single parse session and must not be shared
// between goroutines. Create instances with [NewScanner].
type Scanner struct {
	doc       *Record
	logger    *slog.Logger
	state     state
	inExample bool
	strict    bool
}

// ScannerOption configures a [Scanner].
type ScannerOption func(*Scanner)

// WithStrict makes malformed type expressions fatal instead of dropping the
// offending directive.
func WithStrict(strict bool) ScannerOption {
	return func(s *Scanner) {
		s.strict = strict
	}
}

// WithLogger sets the logger used to report dropped directives.
func WithLogger(logger *slog.Logger) ScannerOption {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// NewScanner creates a [Scanner] in the outside-comment state.
func NewScanner(opts ...ScannerOption) *Scanner {
	s := &Scanner{logger: slog.Default()}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Scan feeds one source line to the scanner. It reports whether the line was
// an annotation comment line. A false result while [Scanner.HasCompleteDoc]
// is true means the comment block has ended at this line.
//
// Lines inside an example fence, directives included, are kept verbatim as
// notes. A leading "*" or "-" list marker on a note nests it one level per
// symbol, on top of any extra dashes.
//
// The only errors are [ErrInternal] and, in strict mode, malformed type
// expressions.
func (s *Scanner) Scan(line string) (bool, error) {
	raw, depth, ok := cutPrefix(line)
	if !ok {
		return false, nil
	}

	if s.state == stateOutside {
		s.state = stateInComment
		s.doc = &Record{}
		s.inExample = false
	}

	return true, s.process(raw, depth)
}

// HasCompleteDoc reports whether a record is open and ready to be taken with
// [Scanner.CurrentDoc].
func (s *Scanner) HasCompleteDoc() bool {
	return s.state == stateInComment
}

// CurrentDoc returns the open record, or nil if there is none, and resets
// the scanner. An example fence left open is closed.
func (s *Scanner) CurrentDoc() *Record {
	doc := s.doc

	if doc != nil {
		if s.inExample {
			doc.Notes = append(doc.Notes, "```")
		}

		doc.resolveGenerics()
	}

	s.reset()

	return doc
}

// Abandon discards the open record, if any.
func (s *Scanner) Abandon() {
	s.reset()
}

func (s *Scanner) reset() {
	s.state = stateOutside
	s.doc = nil
	s.inExample = false
}

// process dispatches one comment body: generic, param, return, other
// directive, fence, then free text.
func (s *Scanner) process(raw string, depth int) error {
	if s.doc == nil {
		return fmt.Errorf("%w: directive %q with no open record", ErrInternal, raw)
	}

	body := strings.TrimSpace(raw)

	if s.inExample {
		if IsFence(body) {
			s.inExample = false
			s.doc.Notes = append(s.doc.Notes, body)

			return nil
		}

		s.doc.Notes = append(s.doc.Notes, strings.TrimPrefix(raw, " "))

		return nil
	}

	if g, ok, err := ParseGeneric(body); err != nil {
		return s.malformed(body, err)
	} else if ok {
		s.doc.Generics = append(s.doc.Generics, g)

		return nil
	}

	if p, ok, err := ParseParam(body); err != nil {
		return s.malformed(body, err)
	} else if ok {
		s.doc.Params = append(s.doc.Params, p)

		return nil
	}

	if t, desc, ok, err := ParseReturn(body); err != nil {
		return s.malformed(body, err)
	} else if ok {
		// Last one wins.
		s.doc.Return = &Return{Type: t, Description: desc}

		return nil
	}

	switch {
	case IsDirective(body):
		s.unknown(body)

	case IsFence(body):
		s.inExample = true
		s.doc.Notes = append(s.doc.Notes, body)

	case body == "":
		// Blank comment lines carry nothing.

	case s.doc.Description == "":
		s.doc.Description = body

	default:
		text, n := textutil.CutListMarker(body)
		s.doc.Notes = append(s.doc.Notes, textutil.FormatNote(depth+n, text))
	}

	return nil
}

func (s *Scanner) malformed(body string, err error) error {
	if s.strict {
		return err
	}

	s.logger.Debug("dropping directive",
		slog.String("directive", body),
		slog.Any("error", err),
	)

	return nil
}

func (s *Scanner) unknown(body string) {
	name := DirectiveName(body)

	attrs := []any{slog.String("directive", name)}
	if suggestion, ok := Suggest(name); ok {
		attrs = append(attrs, slog.String("suggestion", "@"+suggestion))
	}

	s.logger.Debug("skipping unrecognized directive", attrs...)
}

// cutPrefix strips the annotation prefix (indentation, then three or more
// dashes) and trailing whitespace from line. depth is one plus the number of
// dashes beyond the prefix.
func cutPrefix(line string) (string, int, bool) {
	trimmed := strings.TrimLeft(line, " \t")

	n := textutil.CountPrefix(trimmed, '-')
	if n < PrefixLen {
		return "", 0, false
	}

	return textutil.TrimTrailing(trimmed[n:]), n - PrefixLen + 1, true
}
