package profile

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for profiling configuration.
type Flags struct {
	CPU       string
	Heap      string
	Allocs    string
	Goroutine string
	Block     string
	Mutex     string

	MemRate       string
	BlockRate     string
	MutexFraction string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{Flags: f}
}

// Config holds profile output paths and sampling rates. An empty path
// disables that profile; a zero-value Config profiles nothing.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewProfiler] to run a session.
type Config struct {
	Flags Flags

	CPU       string
	Heap      string
	Allocs    string
	Goroutine string
	Block     string
	Mutex     string

	MemRate       int
	BlockRate     int
	MutexFraction int
}

// NewConfig returns a new [Config] with default flag names and all profiles
// disabled.
func NewConfig() *Config {
	f := Flags{
		CPU:           "cpu-profile",
		Heap:          "heap-profile",
		Allocs:        "allocs-profile",
		Goroutine:     "goroutine-profile",
		Block:         "block-profile",
		Mutex:         "mutex-profile",
		MemRate:       "mem-profile-rate",
		BlockRate:     "block-profile-rate",
		MutexFraction: "mutex-profile-fraction",
	}

	return f.NewConfig()
}

// RegisterFlags adds profiling flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.CPU, c.Flags.CPU, "", "write CPU profile to file")
	flags.StringVar(&c.Heap, c.Flags.Heap, "", "write heap profile to file")
	flags.StringVar(&c.Allocs, c.Flags.Allocs, "", "write allocs profile to file")
	flags.StringVar(&c.Goroutine, c.Flags.Goroutine, "", "write goroutine profile to file")
	flags.StringVar(&c.Block, c.Flags.Block, "", "write block profile to file")
	flags.StringVar(&c.Mutex, c.Flags.Mutex, "", "write mutex profile to file")

	flags.IntVar(&c.MemRate, c.Flags.MemRate, DefaultMemRate, "memory profile rate (bytes per sample)")
	flags.IntVar(&c.BlockRate, c.Flags.BlockRate, 1, "block profile rate (nanoseconds)")
	flags.IntVar(&c.MutexFraction, c.Flags.MutexFraction, 1, "mutex profile fraction (1/N sampling)")

	for _, name := range []string{c.Flags.MemRate, c.Flags.BlockRate, c.Flags.MutexFraction} {
		if f := flags.Lookup(name); f != nil {
			f.Hidden = true
		}
	}
}

// RegisterCompletions registers shell completions for profile flags on cmd.
// Rate flags disable file completion; path flags keep the default.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, flag := range []string{c.Flags.MemRate, c.Flags.BlockRate, c.Flags.MutexFraction} {
		err := cmd.RegisterFlagCompletionFunc(flag, noFileComp)
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", flag, err)
		}
	}

	return nil
}

// NewProfiler creates a [Profiler] for this [Config]. A nil logger uses
// [slog.Default].
func (c *Config) NewProfiler(logger *slog.Logger) *Profiler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Profiler{cfg: *c, logger: logger}
}
