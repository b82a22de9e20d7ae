// Package trace is the event log of the s2cell tool.
//
// Commands, input files and batch passes open spans; long scans add a
// chunk point every CheckEvery positions; a heartbeat reports how many
// cells were converted so far. Which of these are kept depends on the
// Level:
//
//	off     nothing
//	error   passes, kept in a ring and dumped only when a command fails
//	phase   commands and passes
//	detail  + files
//	debug   + chunk points
//
// Events go to a StreamTracer (text or NDJSON, to a file or stderr), a
// RingTracer, or both through Fanout. Every event carries the run id of its
// command so interleaved output of parallel runs can be separated.
//
// The tracer travels in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopeFile, "file:ids.txt")
//	defer span.End("done")
package trace
