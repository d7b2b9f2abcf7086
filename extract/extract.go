package extract

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"go.jacobcolvin.com/luadoc/comment"
	"go.jacobcolvin.com/luadoc/signature"
	"go.jacobcolvin.com/luadoc/textutil"
)

// ErrInvalidOption indicates an invalid [Config] value.
var ErrInvalidOption = errors.New("invalid option")

// DefaultLookahead is the number of blank lines tolerated between a comment
// block and the function it documents.
const DefaultLookahead = 1

// Function is one function found in a source file. Doc is nil for
// functions without a preceding annotation comment.
type Function struct {
	Doc       *comment.Record     `json:"doc,omitempty"  yaml:"doc,omitempty"`
	Path      string              `json:"path,omitempty" yaml:"path,omitempty"`
	Signature signature.Signature `json:"signature"      yaml:"signature"`
	Line      int                 `json:"line"           yaml:"line"`
}

// Documented reports whether f has an annotation comment.
func (f Function) Documented() bool {
	return f.Doc != nil
}

// ParseError is a fatal error for one file, located at the offending line.
type ParseError struct {
	Err  error
	Path string
	Line int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Extractor pairs annotation comments with the functions they document.
//
// An Extractor holds configuration only; every call to [Extractor.Extract]
// uses its own [comment.Scanner], so one Extractor may serve many files
// concurrently. Create instances with [New].
type Extractor struct {
	logger       *slog.Logger
	lookahead    int
	jobs         int
	undocumented bool
	private      bool
	strict       bool
}

// Option configures an [Extractor].
type Option func(*Extractor)

// WithLookahead sets how many blank lines may separate a comment block from
// its function. Negative values are treated as zero.
func WithLookahead(n int) Option {
	return func(e *Extractor) {
		e.lookahead = max(n, 0)
	}
}

// WithUndocumented controls whether functions without a comment are
// emitted.
func WithUndocumented(include bool) Option {
	return func(e *Extractor) {
		e.undocumented = include
	}
}

// WithPrivate controls whether local and double-underscore functions are
// emitted.
func WithPrivate(include bool) Option {
	return func(e *Extractor) {
		e.private = include
	}
}

// WithStrict makes malformed type expressions fatal for the file.
func WithStrict(strict bool) Option {
	return func(e *Extractor) {
		e.strict = strict
	}
}

// WithJobs bounds the number of files [ParseFiles] processes at once.
// Values below 1 use GOMAXPROCS.
func WithJobs(n int) Option {
	return func(e *Extractor) {
		e.jobs = n
	}
}

// WithLogger sets the logger for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// New creates an [Extractor] with the given options.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		logger:       slog.Default(),
		lookahead:    DefaultLookahead,
		undocumented: true,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.jobs < 1 {
		e.jobs = runtime.GOMAXPROCS(0)
	}

	return e
}

// ExtractBytes is [Extractor.Extract] over raw file content.
func (e *Extractor) ExtractBytes(path string, content []byte) ([]Function, error) {
	return e.Extract(path, textutil.SplitLines(content))
}

// Extract returns the functions defined in lines, in source order.
//
// A comment block is attached to the function on the line that ends it, or
// on the first function line after at most the configured number of blank
// lines. Blocks followed by anything else are discarded. A fatal error is
// returned as a [*ParseError] and yields no functions.
func (e *Extractor) Extract(path string, lines []string) ([]Function, error) {
	s := comment.NewScanner(
		comment.WithStrict(e.strict),
		comment.WithLogger(e.logger),
	)

	var out []Function

	for i := 0; i < len(lines); i++ {
		open := s.HasCompleteDoc()

		consumed, err := s.Scan(lines[i])
		if err != nil {
			return nil, &ParseError{Path: path, Line: i + 1, Err: err}
		}

		if consumed {
			continue
		}

		if open {
			j, sig, ok := e.nextSignature(lines, i)
			if !ok {
				e.logger.Debug("discarding comment block with no function",
					slog.String("path", path),
					slog.Int("line", i+1),
				)
				s.Abandon()

				continue
			}

			out = e.emit(out, path, j, sig, s.CurrentDoc())
			i = j

			continue
		}

		if sig, ok := signature.Extract(lines[i]); ok && e.undocumented {
			out = e.emit(out, path, i, sig, nil)
		}
	}

	// A block still open at end of file documents nothing.
	s.Abandon()

	return out, nil
}

// nextSignature looks for a function definition at lines[i], skipping up to
// the lookahead limit of blank lines.
func (e *Extractor) nextSignature(lines []string, i int) (int, signature.Signature, bool) {
	blanks := 0

	for j := i; j < len(lines); j++ {
		if sig, ok := signature.Extract(lines[j]); ok {
			return j, sig, true
		}

		if !textutil.IsBlank(lines[j]) || blanks >= e.lookahead {
			break
		}

		blanks++
	}

	return 0, signature.Signature{}, false
}

func (e *Extractor) emit(
	out []Function,
	path string,
	i int,
	sig signature.Signature,
	doc *comment.Record,
) []Function {
	if !sig.IsPublic() && !e.private {
		return out
	}

	return append(out, Function{
		Path:      path,
		Line:      i + 1,
		Signature: sig,
		Doc:       doc,
	})
}
