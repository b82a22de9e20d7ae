package main

import (
	"context"
	"fmt"
	"io"

	"github.com/kylebutts/s2/internal/trace"
)

// setupTracing creates the tracer described by cfg and attaches it to ctx.
// Heartbeats carry whatever probe returns. The returned finish function stops the heartbeat, dumps the ring buffer to
// errOut when failed is set, and flushes and closes the tracer. It is safe to
// call more than once.
func setupTracing(ctx context.Context, cfg trace.Config, probe func() string, errOut io.Writer) (context.Context, func(failed bool), error) {
	if cfg.Level == trace.LevelOff {
		return trace.WithTracer(ctx, trace.Nop), func(bool) {}, nil
	}

	tracer, err := trace.New(cfg)
	if err != nil {
		return ctx, nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	ctx = trace.WithTracer(ctx, tracer)
	heartbeat := trace.StartHeartbeat(tracer, cfg.Heartbeat, probe)

	finished := false
	finish := func(failed bool) {
		if finished {
			return
		}
		finished = true
		heartbeat.Stop()

		if failed {
			if ring, ok := trace.Ring(tracer); ok {
				fmt.Fprintf(errOut, "trace: last %d events\n", len(ring.Snapshot()))
				if err := ring.Dump(errOut, cfg.Format); err != nil {
					fmt.Fprintf(errOut, "trace: dump error: %v\n", err)
				}
			}
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(errOut, "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(errOut, "trace: close error: %v\n", err)
		}
	}
	return ctx, finish, nil
}
