// Package prof wires pprof and runtime/trace output for the CLI.
package prof

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// Options names the outputs to produce. Empty paths are skipped.
type Options struct {
	CPUProfile string
	MemProfile string
	Trace      string
}

// Session owns the running profilers of one command. They are stopped in
// reverse start order, so the heap profile is taken before CPU profiling
// ends.
type Session struct {
	stops []func() error
}

// Start begins the requested profiles. On error nothing is left running.
func Start(opts Options) (*Session, error) {
	s := &Session{}
	steps := []struct {
		path  string
		label string
		start func(string) error
	}{
		{opts.CPUProfile, "cpu profile", s.fileProfile(pprof.StartCPUProfile, pprof.StopCPUProfile)},
		{opts.Trace, "runtime trace", s.fileProfile(trace.Start, trace.Stop)},
		{opts.MemProfile, "mem profile", s.heapProfile},
	}
	for _, step := range steps {
		if step.path == "" {
			continue
		}
		if err := step.start(step.path); err != nil {
			_ = s.Stop()
			return nil, fmt.Errorf("%s: %w", step.label, err)
		}
	}
	return s, nil
}

// fileProfile returns a starter for a profiler that streams into a file
// for as long as it runs.
func (s *Session) fileProfile(begin func(io.Writer) error, end func()) func(string) error {
	return func(path string) error {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := begin(f); err != nil {
			_ = f.Close()
			return err
		}
		s.stops = append(s.stops, func() error {
			end()
			return f.Close()
		})
		return nil
	}
}

// heapProfile checks path now and writes the snapshot on Stop.
func (s *Session) heapProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	s.stops = append(s.stops, func() error {
		runtime.GC()
		err := pprof.WriteHeapProfile(f)
		return errors.Join(err, f.Close())
	})
	return nil
}

// Stop ends running profiles and writes the heap profile, if requested.
// Later calls do nothing.
func (s *Session) Stop() error {
	if s == nil {
		return nil
	}
	var errs []error
	for i := len(s.stops) - 1; i >= 0; i-- {
		if err := s.stops[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.stops = nil
	return errors.Join(errs...)
}
