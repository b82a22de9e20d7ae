package driver

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/kylebutts/s2/internal/trace"
	"github.com/kylebutts/s2/internal/vector"
)

// ErrStrict matches the error of a direct conversion that stopped at a bad
// element.
var ErrStrict = errors.New("direct conversion failed")

// ElementError is the failure of a direct conversion: the position of the
// first bad element and the codec error it produced.
type ElementError struct {
	Op  string
	Pos int
	Err error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("%s: position %d: %v", e.Op, e.Pos, e.Err)
}

func (e *ElementError) Unwrap() error { return e.Err }

func (e *ElementError) Is(target error) bool { return target == ErrStrict }

// direct converts every element with no recovery: missing inputs become the
// output missing marker, the first failing element aborts the call with an
// *ElementError and no output. Cancellation is polled like an operator pass.
func direct[In, Out any](ctx context.Context, name string, in vector.Domain[In], out vector.Domain[Out], fn vector.Transform[In, Out], values []In, opts Options) ([]Out, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	every := opts.checkEvery()
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "direct."+name, trace.CurrentSpan(ctx)).
		WithExtra("n", strconv.Itoa(len(values)))
	start := time.Now()
	emit := func(status vector.Status, done int) {
		if opts.Progress != nil {
			opts.Progress.OnEvent(vector.Event{Op: name, Status: status, Done: done, Total: len(values), Elapsed: time.Since(start)})
		}
	}
	emit(vector.StatusWorking, 0)

	result := make([]Out, len(values))
	for i, v := range values {
		if i%every == 0 {
			if err := ctx.Err(); err != nil {
				span.WithExtra("at", strconv.Itoa(i)).End(string(vector.StatusCancelled))
				emit(vector.StatusCancelled, i)
				return nil, fmt.Errorf("%w at position %d: %w", vector.ErrCancelled, i, err)
			}
			if i > 0 {
				trace.Point(tracer, trace.ScopeChunk, "direct.chunk", strconv.Itoa(i), span.ID())
				emit(vector.StatusWorking, i)
			}
		}
		if in.IsMissing != nil && in.IsMissing(v) {
			result[i] = out.Missing
			continue
		}
		r, err := fn(v)
		if err != nil {
			span.WithExtra("at", strconv.Itoa(i)).End("failed")
			emit(vector.StatusProblems, i)
			return nil, &ElementError{Op: name, Pos: i, Err: err}
		}
		result[i] = r
	}
	span.End(string(vector.StatusDone))
	emit(vector.StatusDone, len(values))
	return result, nil
}
