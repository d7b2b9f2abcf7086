// Command luadoc extracts documentation from Lua annotation comments.
//
// Each function definition preceded by a "---" comment block is reported
// with its parameters, return type, generics and notes. Functions without a
// comment are reported too, unless --undocumented=false is given.
//
// # Usage
//
//	luadoc [flags] <file.lua|directory|glob|-> ...
//	luadoc schema
//	luadoc version
//
// Directories are searched for **/*.lua. Glob patterns support "**" and are
// expanded by luadoc itself, so they may be quoted. "-" reads from stdin.
//
// # Output
//
// The default format is a table when stdout is a terminal and JSON
// otherwise. YAML is also available. "luadoc schema" prints the JSON Schema
// of the JSON output.
//
// Problems with individual files are reported on stderr; the remaining files
// are still processed and the exit status is 1.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/luadoc/extract"
	"go.jacobcolvin.com/luadoc/log"
	"go.jacobcolvin.com/luadoc/profile"
	"go.jacobcolvin.com/luadoc/version"
)

var (
	// ErrReadInput indicates an input file or directory could not be read.
	ErrReadInput = errors.New("read input")
	// ErrWriteOutput indicates the result could not be written.
	ErrWriteOutput = errors.New("write output")
	// ErrFilesFailed indicates that at least one input file failed to parse.
	ErrFilesFailed = errors.New("some files failed")
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := newRootCmd().ExecuteContext(ctx)

	stop()

	if err != nil {
		if !errors.Is(err, ErrFilesFailed) {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}

		os.Exit(1)
	}
}

// app holds every flag-backed configuration of the root command.
type app struct {
	log     *log.Config
	extract *extract.Config
	profile *profile.Config
	output  *OutputConfig
}

func newRootCmd() *cobra.Command {
	a := &app{
		log:     log.NewConfig(),
		extract: extract.NewConfig(),
		profile: profile.NewConfig(),
		output:  NewOutputConfig(),
	}

	rootCmd := &cobra.Command{
		Use:   "luadoc [flags] <file.lua|directory|glob|-> ...",
		Short: "Extract documentation from Lua annotation comments",
		Long: `luadoc reads Lua sources, pairs each "---" annotation comment block with the
function definition that follows it, and prints the result as a table, JSON
or YAML.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args)
		},
	}

	a.log.RegisterFlags(rootCmd.PersistentFlags())
	a.profile.RegisterFlags(rootCmd.PersistentFlags())
	a.extract.RegisterFlags(rootCmd.Flags())
	a.output.RegisterFlags(rootCmd.Flags())

	for _, reg := range []func(*cobra.Command) error{
		a.log.RegisterCompletions,
		a.profile.RegisterCompletions,
		a.extract.RegisterCompletions,
		a.output.RegisterCompletions,
	} {
		err := reg(rootCmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
		}
	}

	rootCmd.AddCommand(newSchemaCmd(), newVersionCmd())

	return rootCmd
}

func (a *app) run(cmd *cobra.Command, args []string) (err error) {
	stderr := cmd.ErrOrStderr()

	handler, err := a.log.NewHandler(stderr)
	if err != nil {
		return err //nolint:wrapcheck // Already wrapped by the log package.
	}

	logger := slog.New(handler)

	p := a.profile.NewProfiler(logger)

	err = p.Start()
	if err != nil {
		return fmt.Errorf("profile: %w", err)
	}

	defer func() {
		err = errors.Join(err, p.Stop())
	}()

	opts, err := a.extract.Options(logger)
	if err != nil {
		return err //nolint:wrapcheck // Already wrapped by the extract package.
	}

	files, err := collectSources(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	logger.Debug("collected sources", slog.Int("files", len(files)))

	results := extract.ParseFiles(cmd.Context(), files, opts...)

	diag := newDiagnostics(stderr)

	var fns []extract.Function

	failed := 0

	for _, res := range results {
		if res.Err != nil {
			failed++

			diag.Error(res.Path, res.Err)

			continue
		}

		fns = append(fns, res.Functions...)
	}

	err = a.output.Write(cmd.OutOrStdout(), fns)
	if err != nil {
		return err
	}

	if failed > 0 {
		diag.Summary(failed, len(results))

		return ErrFilesFailed
	}

	return nil
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the JSON output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeJSON(cmd.OutOrStdout(), extract.Schema())
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), version.Get().String())
			if err != nil {
				return fmt.Errorf("%w: %w", ErrWriteOutput, err)
			}

			return nil
		},
	}
}
