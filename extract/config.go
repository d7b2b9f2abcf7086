package extract

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for extraction configuration, allowing callers
// to customize flag names while keeping sensible defaults.
type Flags struct {
	Lookahead    string
	Undocumented string
	Private      string
	Strict       string
	Jobs         string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags:        f,
		Lookahead:    DefaultLookahead,
		Undocumented: true,
	}
}

// Config holds CLI flag values for extraction.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.Options] to build [Option] values for
// [New] or [ParseFiles].
type Config struct {
	Flags        Flags
	Lookahead    int
	Jobs         int
	Undocumented bool
	Private      bool
	Strict       bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Lookahead:    "lookahead",
		Undocumented: "undocumented",
		Private:      "private",
		Strict:       "strict",
		Jobs:         "jobs",
	}

	return f.NewConfig()
}

// RegisterFlags adds extraction flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.IntVar(&c.Lookahead, c.Flags.Lookahead, DefaultLookahead,
		"blank lines allowed between a comment block and its function")
	flags.BoolVar(&c.Undocumented, c.Flags.Undocumented, true,
		"include functions without an annotation comment")
	flags.BoolVar(&c.Private, c.Flags.Private, false,
		"include local and __internal functions")
	flags.BoolVar(&c.Strict, c.Flags.Strict, false,
		"fail a file on malformed type expressions")
	flags.IntVarP(&c.Jobs, c.Flags.Jobs, "j", 0,
		"files to parse concurrently (0 = GOMAXPROCS)")
}

// RegisterCompletions registers shell completions for extraction flags on
// cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, flag := range []string{c.Flags.Lookahead, c.Flags.Jobs} {
		err := cmd.RegisterFlagCompletionFunc(flag, noFileComp)
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", flag, err)
		}
	}

	return nil
}

// Options validates c and returns the equivalent [Option] values. The
// logger is passed through to every [Extractor].
func (c *Config) Options(logger *slog.Logger) ([]Option, error) {
	if c.Lookahead < 0 {
		return nil, fmt.Errorf("%w: %s must not be negative: %d",
			ErrInvalidOption, c.Flags.Lookahead, c.Lookahead)
	}

	if c.Jobs < 0 {
		return nil, fmt.Errorf("%w: %s must not be negative: %d",
			ErrInvalidOption, c.Flags.Jobs, c.Jobs)
	}

	opts := []Option{
		WithLookahead(c.Lookahead),
		WithUndocumented(c.Undocumented),
		WithPrivate(c.Private),
		WithStrict(c.Strict),
		WithJobs(c.Jobs),
	}

	if logger != nil {
		opts = append(opts, WithLogger(logger))
	}

	return opts, nil
}
