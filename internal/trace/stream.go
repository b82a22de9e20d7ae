package trace

import (
	"bufio"
	"errors"
	"io"
	"sync"
)

// StreamTracer writes events as they are recorded. Output is buffered and
// flushed whenever a command or pass ends and on every heartbeat, so a
// trace being followed stays current at pass granularity.
type StreamTracer struct {
	mu     sync.Mutex
	dst    io.Writer
	w      *bufio.Writer
	level  Level
	format Format
	runID  string
	err    error // first write error; later events are dropped
}

// NewStreamTracer writes events recorded at level to w. FormatAuto means
// text.
func NewStreamTracer(w io.Writer, level Level, format Format, runID string) *StreamTracer {
	if format == FormatAuto {
		format = FormatText
	}
	return &StreamTracer{dst: w, w: bufio.NewWriter(w), level: level, format: format, runID: runID}
}

func (t *StreamTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return
	}

	ev.Seq = NextSeq()
	ev.RunID = t.runID
	if _, err := t.w.Write(FormatEvent(ev, t.format)); err != nil {
		t.err = err
		return
	}
	if ev.Kind == KindHeartbeat || (ev.Kind == KindSpanEnd && ev.Scope <= ScopePass) {
		t.err = t.w.Flush()
	}
}

// Flush writes buffered events and returns the first write error seen.
func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err == nil {
		t.err = t.w.Flush()
	}
	return t.err
}

// Close flushes and closes the destination when it is closable.
func (t *StreamTracer) Close() error {
	err := t.Flush()
	if c, ok := t.dst.(io.Closer); ok {
		err = errors.Join(err, c.Close())
	}
	return err
}

func (t *StreamTracer) Level() Level { return t.level }
