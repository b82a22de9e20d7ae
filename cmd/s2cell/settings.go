package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/kylebutts/s2/internal/config"
	"github.com/kylebutts/s2/internal/diagfmt"
	"github.com/kylebutts/s2/internal/driver"
	"github.com/kylebutts/s2/internal/prof"
	"github.com/kylebutts/s2/internal/trace"
)

// settings is the configuration of one command after s2cell.toml and the
// flags were merged. Flags win over the file only when they were set.
type settings struct {
	cfg *config.Config

	quiet     bool
	timings   bool
	color     bool
	ui        uiMode
	jobs      int
	policy    driver.TokenPolicy
	format    diagfmt.Format
	pathMode  diagfmt.PathMode
	withNotes bool

	trace trace.Config
	prof  prof.Options
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	root := cmd.Root()
	pf := root.PersistentFlags()

	configPath, err := pf.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		return nil, err
	}

	if err := overrideString(cmd, "color", &cfg.Report.Color); err != nil {
		return nil, err
	}
	if err := overrideString(cmd, "report", &cfg.Report.Format); err != nil {
		return nil, err
	}
	if err := overrideString(cmd, "path-mode", &cfg.Report.PathMode); err != nil {
		return nil, err
	}
	if err := overrideInt(cmd, "max-problems", &cfg.Report.MaxProblems); err != nil {
		return nil, err
	}
	if err := overrideInt(cmd, "jobs", &cfg.Batch.Jobs); err != nil {
		return nil, err
	}
	if err := overrideInt(cmd, "check-every", &cfg.Batch.CheckEvery); err != nil {
		return nil, err
	}
	if cmd.Flags().Lookup("policy") != nil {
		if err := overrideString(cmd, "policy", &cfg.Batch.TokenPolicy); err != nil {
			return nil, err
		}
	}
	if err := overrideString(cmd, "trace", &cfg.Trace.Output); err != nil {
		return nil, err
	}
	if err := overrideString(cmd, "trace-level", &cfg.Trace.Level); err != nil {
		return nil, err
	}
	if err := overrideString(cmd, "trace-mode", &cfg.Trace.Mode); err != nil {
		return nil, err
	}
	if err := overrideString(cmd, "trace-format", &cfg.Trace.Format); err != nil {
		return nil, err
	}
	if err := overrideInt(cmd, "trace-ring-size", &cfg.Trace.RingSize); err != nil {
		return nil, err
	}
	if pf.Changed("trace-heartbeat") {
		hb, err := pf.GetDuration("trace-heartbeat")
		if err != nil {
			return nil, fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
		}
		cfg.Trace.Heartbeat = config.Duration{Duration: hb}
	}
	// --trace alone turns streaming on at phase level.
	if pf.Changed("trace") && !pf.Changed("trace-level") && cfg.Trace.Level == "off" {
		cfg.Trace.Level = "phase"
		if !pf.Changed("trace-mode") {
			cfg.Trace.Mode = "stream"
		}
	}

	if cfg.Batch.CheckEvery <= 0 {
		return nil, &config.Error{Key: "batch.check_every", Msg: "must be positive"}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &settings{cfg: cfg}
	if s.quiet, err = pf.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = pf.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if s.withNotes, err = pf.GetBool("with-notes"); err != nil {
		return nil, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	uiFlag, err := pf.GetString("ui")
	if err != nil {
		return nil, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if s.ui, err = readUIMode(uiFlag); err != nil {
		return nil, err
	}

	s.color = useColor(cfg.Report.Color, cmd.ErrOrStderr())
	s.jobs = cfg.Batch.Jobs
	if s.jobs == 0 {
		s.jobs = runtime.GOMAXPROCS(0)
	}
	if s.policy, err = driver.ParseTokenPolicy(cfg.Batch.TokenPolicy); err != nil {
		return nil, err
	}
	if s.format, err = diagfmt.ParseFormat(cfg.Report.Format); err != nil {
		return nil, err
	}
	if s.pathMode, err = diagfmt.ParsePathMode(cfg.Report.PathMode); err != nil {
		return nil, err
	}

	if s.trace, err = traceConfig(cfg.Trace); err != nil {
		return nil, err
	}

	for name, dst := range map[string]*string{
		"cpuprofile":    &s.prof.CPUProfile,
		"memprofile":    &s.prof.MemProfile,
		"runtime-trace": &s.prof.Trace,
	} {
		if *dst, err = pf.GetString(name); err != nil {
			return nil, fmt.Errorf("failed to get %s flag: %w", name, err)
		}
	}
	return s, nil
}

func traceConfig(tc config.TraceConfig) (trace.Config, error) {
	level, err := trace.ParseLevel(tc.Level)
	if err != nil {
		return trace.Config{}, err
	}
	mode, err := trace.ParseMode(tc.Mode)
	if err != nil {
		return trace.Config{}, err
	}
	format, err := trace.ParseFormat(tc.Format)
	if err != nil {
		return trace.Config{}, err
	}
	return trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: tc.Output,
		RingSize:   tc.RingSize,
		Heartbeat:  tc.Heartbeat.Duration,
	}, nil
}

func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	}
	return isTerminalWriter(w)
}

func overrideString(cmd *cobra.Command, name string, dst *string) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	*dst = v
	return nil
}

func overrideInt(cmd *cobra.Command, name string, dst *int) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	*dst = v
	return nil
}
