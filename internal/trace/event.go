package trace

import "time"

// Kind says what an event marks.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	// KindPoint is an instant, such as a progress chunk inside a pass.
	KindPoint
	// KindHeartbeat is emitted by a Heartbeat regardless of level.
	KindHeartbeat
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
	KindHeartbeat: "heartbeat",
}

// kindGlyphs prefix event names in text output.
var kindGlyphs = [...]string{
	KindSpanBegin: "→ ",
	KindSpanEnd:   "← ",
	KindPoint:     "• ",
	KindHeartbeat: "♡ ",
}

func (k Kind) String() string {
	if k == 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Scope is the granularity of an event. Lower values are coarser, and each
// Level records every scope up to a limit.
type Scope uint8

const (
	// ScopeDriver is a CLI command.
	ScopeDriver Scope = iota + 1
	// ScopePass is one batch pass of an operator or direct conversion.
	ScopePass
	// ScopeFile is the processing of one input file.
	ScopeFile
	// ScopeChunk is a progress point inside a pass.
	ScopeChunk
)

var scopeNames = [...]string{
	ScopeDriver: "driver",
	ScopePass:   "pass",
	ScopeFile:   "file",
	ScopeChunk:  "chunk",
}

func (s Scope) String() string {
	if s == 0 || int(s) >= len(scopeNames) {
		return "unknown"
	}
	return scopeNames[s]
}

// Event is one trace record. Seq and RunID are stamped by the tracer that
// stores the event.
type Event struct {
	Time     time.Time
	Seq      uint64
	RunID    string
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64
	Name     string // e.g. "cmd:to-token", "vector.is-valid", "file:ids.txt"
	Detail   string
	Extra    map[string]string
}
