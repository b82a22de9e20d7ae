package vector

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/kylebutts/s2/internal/diag"
	"github.com/kylebutts/s2/internal/trace"
)

// DefaultCheckEvery is the cancellation polling cadence in positions.
const DefaultCheckEvery = 1000

// ErrCancelled matches the error of a pass unwound by cancellation. The
// context error is wrapped alongside it.
var ErrCancelled = errors.New("batch pass cancelled")

// Transform converts one present element. A non-nil error marks the position
// as failed; the message becomes its failure-log entry.
type Transform[In, Out any] func(In) (Out, error)

// Reporter receives the failure log of a pass, at most once and only when it
// is not empty, and returns the consolidated error to surface.
type Reporter interface {
	ReportProblems(positions []int, messages []string) error
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(positions []int, messages []string) error

func (f ReporterFunc) ReportProblems(positions []int, messages []string) error {
	return f(positions, messages)
}

// Problem is one failure-log entry.
type Problem struct {
	Pos int
	Msg string
}

// Config carries the collaborators of an operator.
type Config struct {
	// Reporter defaults to diag.ProblemReporter named after the operator.
	Reporter Reporter
	// CheckEvery defaults to DefaultCheckEvery.
	CheckEvery int
	// Progress is optional.
	Progress ProgressSink
}

// Operator applies Fn over batches of In, producing batches of Out.
type Operator[In, Out any] struct {
	Name string
	In   Domain[In]
	Out  Domain[Out]
	Fn   Transform[In, Out]
	Config
}

// New builds an operator with its collaborators resolved up front.
func New[In, Out any](name string, in Domain[In], out Domain[Out], fn Transform[In, Out], cfg Config) *Operator[In, Out] {
	if cfg.CheckEvery <= 0 {
		cfg.CheckEvery = DefaultCheckEvery
	}
	if cfg.Reporter == nil {
		cfg.Reporter = diag.ProblemReporter{Op: name}
	}
	return &Operator[In, Out]{Name: name, In: in, Out: out, Fn: fn, Config: cfg}
}

// Run scans in and hands a non-empty failure log to the reporter. On
// cancellation it returns nil output and an error matching ErrCancelled.
// Otherwise the output always has len(in) elements, and the reporter's error,
// if any, is returned with it.
func (op *Operator[In, Out]) Run(ctx context.Context, in []In) ([]Out, error) {
	out, log, err := op.Scan(ctx, in)
	if err != nil {
		return nil, err
	}
	if len(log) == 0 {
		return out, nil
	}
	positions := make([]int, len(log))
	messages := make([]string, len(log))
	for i, p := range log {
		positions[i] = p.Pos
		messages[i] = p.Msg
	}
	return out, op.reporter().ReportProblems(positions, messages)
}

// Scan is Run without the reporter: it returns the output and the raw
// failure log. The only error it returns is cancellation.
func (op *Operator[In, Out]) Scan(ctx context.Context, in []In) ([]Out, []Problem, error) {
	if op.Fn == nil {
		return nil, nil, fmt.Errorf("vector: operator %q has no transform", op.Name)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	every := op.CheckEvery
	if every <= 0 {
		every = DefaultCheckEvery
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "vector."+op.Name, trace.CurrentSpan(ctx)).
		WithExtra("n", strconv.Itoa(len(in)))
	start := time.Now()
	op.emit(Event{Status: StatusWorking, Total: len(in)})

	out := make([]Out, len(in))
	var log []Problem
	for i, v := range in {
		if i%every == 0 {
			if err := ctx.Err(); err != nil {
				span.WithExtra("at", strconv.Itoa(i)).End("cancelled")
				op.emit(Event{Status: StatusCancelled, Done: i, Total: len(in), Problems: len(log), Elapsed: time.Since(start)})
				return nil, nil, fmt.Errorf("%w at position %d: %w", ErrCancelled, i, err)
			}
			if i > 0 {
				trace.Point(tracer, trace.ScopeChunk, "vector.chunk", strconv.Itoa(i), span.ID())
				op.emit(Event{Status: StatusWorking, Done: i, Total: len(in), Problems: len(log), Elapsed: time.Since(start)})
			}
		}
		if op.In.missing(v) {
			out[i] = op.Out.Missing
			continue
		}
		r, err := op.Fn(v)
		if err != nil {
			out[i] = op.Out.Missing
			log = append(log, Problem{Pos: i, Msg: err.Error()})
			continue
		}
		out[i] = r
	}

	status := StatusDone
	if len(log) > 0 {
		status = StatusProblems
	}
	span.WithExtra("problems", strconv.Itoa(len(log))).End(string(status))
	op.emit(Event{Status: status, Done: len(in), Total: len(in), Problems: len(log), Elapsed: time.Since(start)})
	return out, log, nil
}

func (op *Operator[In, Out]) reporter() Reporter {
	if op.Reporter != nil {
		return op.Reporter
	}
	return diag.ProblemReporter{Op: op.Name}
}

func (op *Operator[In, Out]) emit(evt Event) {
	if op.Progress == nil {
		return
	}
	evt.Op = op.Name
	op.Progress.OnEvent(evt)
}
