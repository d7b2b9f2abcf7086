package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"go.jacobcolvin.com/luadoc/extract"
)

// diagnostics prints per-file problems to stderr, coloured on terminals.
type diagnostics struct {
	w     io.Writer
	label *color.Color
	path  *color.Color
	faint *color.Color
}

func newDiagnostics(w io.Writer) *diagnostics {
	d := &diagnostics{
		w:     w,
		label: color.New(color.FgRed, color.Bold),
		path:  color.New(color.Bold),
		faint: color.New(color.Faint),
	}

	if !isTerminal(w) {
		d.label.DisableColor()
		d.path.DisableColor()
		d.faint.DisableColor()
	} else {
		d.label.EnableColor()
		d.path.EnableColor()
		d.faint.EnableColor()
	}

	return d
}

// Error reports a failed file. A [*extract.ParseError] is shown with its
// line number.
func (d *diagnostics) Error(path string, err error) {
	loc := path

	var perr *extract.ParseError
	if errors.As(err, &perr) {
		loc = fmt.Sprintf("%s:%d", perr.Path, perr.Line)
		err = perr.Err
	}

	fmt.Fprintf(d.w, "%s %s: %v\n", d.label.Sprint("error:"), d.path.Sprint(loc), err)
}

// Summary reports how many files failed.
func (d *diagnostics) Summary(failed, total int) {
	fmt.Fprintln(d.w, d.faint.Sprintf("%d of %d files failed", failed, total))
}
