package profile

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"
)

// DefaultMemRate is the runtime's default heap sampling rate.
const DefaultMemRate = 512 * 1024

// Profiler runs one profiling session: [Profiler.Start] before the work,
// [Profiler.Stop] after it.
type Profiler struct {
	logger  *slog.Logger
	cpuFile *os.File
	cfg     Config
}

// Enabled reports whether any profile output is configured.
func (p *Profiler) Enabled() bool {
	return p.cfg.CPU != "" || len(p.snapshots()) > 0
}

// Start applies sampling rates for the enabled profiles and starts CPU
// profiling. Rates for disabled profiles are left alone, as is a
// non-positive memory rate.
func (p *Profiler) Start() error {
	if p.cfg.MemRate > 0 && (p.cfg.Heap != "" || p.cfg.Allocs != "") {
		runtime.MemProfileRate = p.cfg.MemRate
	}

	if p.cfg.Block != "" {
		runtime.SetBlockProfileRate(p.cfg.BlockRate)
	}

	if p.cfg.Mutex != "" {
		runtime.SetMutexProfileFraction(p.cfg.MutexFraction)
	}

	if p.cfg.CPU == "" {
		return nil
	}

	f, err := os.Create(p.cfg.CPU) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("create cpu profile: %w", err)
	}

	err = pprof.StartCPUProfile(f)
	if err != nil {
		return errors.Join(fmt.Errorf("start cpu profile: %w", err), f.Close())
	}

	p.cpuFile = f

	return nil
}

// Stop ends CPU profiling and writes every enabled snapshot profile. All
// profiles are attempted; their errors are joined.
func (p *Profiler) Stop() error {
	var errs []error

	if p.cpuFile != nil {
		pprof.StopCPUProfile()

		err := p.cpuFile.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("close cpu profile: %w", err))
		} else {
			p.logger.Debug("wrote profile", slog.String("profile", "cpu"), slog.String("path", p.cfg.CPU))
		}

		p.cpuFile = nil
	}

	for _, s := range p.snapshots() {
		err := writeProfile(s.name, s.path)
		if err != nil {
			errs = append(errs, err)

			continue
		}

		p.logger.Debug("wrote profile", slog.String("profile", s.name), slog.String("path", s.path))
	}

	return errors.Join(errs...)
}

type snapshot struct {
	name string
	path string
}

func (p *Profiler) snapshots() []snapshot {
	all := []snapshot{
		{"heap", p.cfg.Heap},
		{"allocs", p.cfg.Allocs},
		{"goroutine", p.cfg.Goroutine},
		{"block", p.cfg.Block},
		{"mutex", p.cfg.Mutex},
	}

	var out []snapshot

	for _, s := range all {
		if s.path != "" {
			out = append(out, s)
		}
	}

	return out
}

func writeProfile(name, path string) error {
	prof := pprof.Lookup(name)
	if prof == nil {
		return fmt.Errorf("unknown profile: %s", name)
	}

	f, err := os.Create(path) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("create %s profile: %w", name, err)
	}

	err = prof.WriteTo(f, 0)
	if err != nil {
		return errors.Join(fmt.Errorf("write %s profile: %w", name, err), f.Close())
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("close %s profile: %w", name, err)
	}

	return nil
}
