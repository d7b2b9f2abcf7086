package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"go.jacobcolvin.com/luadoc/extract"
)

// Format is an output format.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// ErrUnknownFormat indicates an unsupported --format value.
var ErrUnknownFormat = errors.New("unknown output format")

func allFormats() []string {
	return []string{string(FormatJSON), string(FormatYAML), string(FormatTable)}
}

// OutputFlags holds CLI flag names for output configuration.
type OutputFlags struct {
	Format string
	Output string
}

// OutputConfig holds CLI flag values for output configuration. An empty
// Format selects table output on a terminal and JSON otherwise.
type OutputConfig struct {
	Flags  OutputFlags
	Format string
	Output string
}

// NewOutputConfig returns a new [OutputConfig] with default flag names.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Flags: OutputFlags{
			Format: "format",
			Output: "output",
		},
	}
}

// RegisterFlags adds output flags to the given [*pflag.FlagSet].
func (c *OutputConfig) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.Format, c.Flags.Format, "f", "",
		fmt.Sprintf("output format (%s); default table on a terminal, json otherwise",
			strings.Join(allFormats(), "|")))
	flags.StringVarP(&c.Output, c.Flags.Output, "o", "-",
		"output file path (- for stdout)")
}

// RegisterCompletions registers shell completions for output flags on cmd.
func (c *OutputConfig) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Format,
		cobra.FixedCompletions(allFormats(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Format, err)
	}

	return nil
}

// Write renders fns to the configured destination; stdout is used when no
// output file is set.
func (c *OutputConfig) Write(stdout io.Writer, fns []extract.Function) error {
	toFile := c.Output != "" && c.Output != "-"

	format, err := c.resolveFormat(!toFile && isTerminal(stdout))
	if err != nil {
		return err
	}

	if !toFile {
		return render(stdout, format, fns)
	}

	f, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	err = render(f, format, fns)

	closeErr := f.Close()
	if closeErr != nil {
		closeErr = fmt.Errorf("%w: %w", ErrWriteOutput, closeErr)
	}

	return errors.Join(err, closeErr)
}

func (c *OutputConfig) resolveFormat(terminal bool) (Format, error) {
	if c.Format == "" {
		if terminal {
			return FormatTable, nil
		}

		return FormatJSON, nil
	}

	f := Format(strings.ToLower(c.Format))
	if !slices.Contains(allFormats(), string(f)) {
		return "", fmt.Errorf("%w: %q (want one of %s)",
			ErrUnknownFormat, c.Format, strings.Join(allFormats(), ", "))
	}

	return f, nil
}

func render(w io.Writer, format Format, fns []extract.Function) error {
	if fns == nil {
		fns = []extract.Function{}
	}

	switch format {
	case FormatYAML:
		return writeYAML(w, fns)
	case FormatTable:
		return writeTable(w, fns)
	default:
		return writeJSON(w, fns)
	}
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	out = append(out, '\n')

	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}

func writeYAML(w io.Writer, v any) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}

var tableHeaders = []string{"Location", "Function", "Visibility", "Params", "Returns", "Description"}

func writeTable(w io.Writer, fns []extract.Function) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.Border{
				Left:   tw.Off,
				Right:  tw.Off,
				Top:    tw.Off,
				Bottom: tw.Off,
			},
			Settings: tw.Settings{
				Separators: tw.Separators{
					BetweenColumns: tw.Off,
				},
			},
		}),
	)

	table.Header(tableHeaders)

	for _, fn := range fns {
		err := table.Append(tableRow(fn))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}

func tableRow(fn extract.Function) []string {
	loc := fn.Path + ":" + strconv.Itoa(fn.Line)
	name := fn.Signature.QualifiedName + "(" + fn.Signature.RawParameters + ")"
	row := []string{loc, name, string(fn.Signature.Visibility), "", "", ""}

	if fn.Doc == nil {
		return row
	}

	params := make([]string, 0, len(fn.Doc.Params))
	for _, p := range fn.Doc.Params {
		params = append(params, p.Name+": "+p.Type.String())
	}

	row[3] = strings.Join(params, ", ")

	if fn.Doc.Return != nil {
		row[4] = fn.Doc.Return.Type.String()
	}

	row[5] = fn.Doc.Description

	return row
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd())) //nolint:gosec // File descriptors fit in int.
}
