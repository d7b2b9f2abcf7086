// Package profile writes pprof profiles for a single CLI invocation.
//
// Register flags on the root command, start the [Profiler] before running
// and stop it afterwards:
//
//	cfg := profile.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//
//	p := cfg.NewProfiler(logger)
//	if err := p.Start(); err != nil {
//	    return err
//	}
//	defer p.Stop()
//
// Each profile is enabled by giving it an output path, for example
// --cpu-profile=cpu.prof. Sampling rates only change for enabled profiles.
package profile
