package vector

import "time"

// Status captures the state of a pass in a progress event.
type Status string

const (
	// StatusQueued indicates the pass has not started.
	StatusQueued Status = "queued"
	// StatusWorking indicates the scan is running.
	StatusWorking Status = "working"
	// StatusDone indicates the pass finished with an empty failure log.
	StatusDone Status = "done"
	// StatusProblems indicates the pass finished and reported problems.
	StatusProblems Status = "problems"
	// StatusCancelled indicates the pass was unwound by cancellation.
	StatusCancelled Status = "cancelled"
)

// Event reports progress of one pass. File is empty unless a FileSink
// stamped it.
type Event struct {
	Op       string
	File     string
	Status   Status
	Done     int
	Total    int
	Problems int
	Elapsed  time.Duration
}

// Fraction returns Done/Total in [0, 1].
func (e Event) Fraction() float64 {
	if e.Total <= 0 {
		if e.Status == StatusDone || e.Status == StatusProblems {
			return 1
		}
		return 0
	}
	return float64(e.Done) / float64(e.Total)
}

// ProgressSink consumes progress events. Operators call it from the scanning
// goroutine, at most once per CheckEvery positions.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// FileSink stamps File on every event before forwarding it.
type FileSink struct {
	File string
	Next ProgressSink
}

func (s FileSink) OnEvent(evt Event) {
	if s.Next == nil {
		return
	}
	evt.File = s.File
	s.Next.OnEvent(evt)
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(evt Event) { f(evt) }

// Tee forwards every event to each sink in order.
type Tee []ProgressSink

func (t Tee) OnEvent(evt Event) {
	for _, s := range t {
		if s != nil {
			s.OnEvent(evt)
		}
	}
}
