package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Timer collects laps, one per conversion pass. Files converted
// concurrently share one Timer, so laps are appended under a lock in the
// order they finish.
type Timer struct {
	mu    sync.Mutex
	laps  []Lap
	clock func() time.Time
}

// Lap is one finished pass.
type Lap struct {
	Name    string
	Note    string
	Cells   int
	Elapsed time.Duration
}

// Rate returns the cells converted per second, or 0 when unknown.
func (l Lap) Rate() float64 {
	if l.Cells == 0 || l.Elapsed <= 0 {
		return 0
	}
	return float64(l.Cells) / l.Elapsed.Seconds()
}

// Stopwatch measures one running lap. The zero value and the stopwatch of
// a nil Timer record nothing.
type Stopwatch struct {
	timer *Timer
	name  string
	start time.Time
}

// NewTimer returns an empty Timer.
func NewTimer() *Timer { return &Timer{clock: time.Now} }

// Start begins a lap called name.
func (t *Timer) Start(name string) Stopwatch {
	if t == nil {
		return Stopwatch{}
	}
	return Stopwatch{timer: t, name: name, start: t.clock()}
}

// Stop records the lap with the number of cells it converted. Only the
// first call counts.
func (s *Stopwatch) Stop(note string, cells int) {
	t := s.timer
	if t == nil {
		return
	}
	s.timer = nil
	lap := Lap{Name: s.name, Note: note, Cells: cells, Elapsed: t.clock().Sub(s.start)}
	t.mu.Lock()
	t.laps = append(t.laps, lap)
	t.mu.Unlock()
}

// Laps returns a copy of the finished laps.
func (t *Timer) Laps() []Lap {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Lap(nil), t.laps...)
}

// Totals sums cells and elapsed time over all laps.
func (t *Timer) Totals() (cells int, elapsed time.Duration) {
	for _, l := range t.Laps() {
		cells += l.Cells
		elapsed += l.Elapsed
	}
	return cells, elapsed
}

// Summary renders the laps as a table, e.g.
//
//	timings:
//	  to-token        0.42 ms    1,500 cells   3,571,428 cells/s  ids.txt
//	  total           0.42 ms    1,500 cells
func (t *Timer) Summary() string {
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, l := range t.Laps() {
		fmt.Fprintf(&sb, "  %-12s %9.2f ms  %14s", l.Name, millis(l.Elapsed), FormatCount(l.Cells, "cell"))
		if r := l.Rate(); r > 0 {
			fmt.Fprintf(&sb, "  %s cells/s", FormatNumber(int(r)))
		}
		if l.Note != "" {
			sb.WriteString("  " + l.Note)
		}
		sb.WriteByte('\n')
	}
	cells, elapsed := t.Totals()
	fmt.Fprintf(&sb, "  %-12s %9.2f ms  %14s\n", "total", millis(elapsed), FormatCount(cells, "cell"))
	return sb.String()
}

// LapReport is the serializable form of a Lap.
type LapReport struct {
	Name      string  `json:"name" msgpack:"name"`
	ElapsedMS float64 `json:"elapsed_ms" msgpack:"elapsed_ms"`
	Cells     int     `json:"cells" msgpack:"cells"`
	Note      string  `json:"note,omitempty" msgpack:"note,omitempty"`
}

// Report is the serializable form of a Timer.
type Report struct {
	TotalMS float64     `json:"total_ms" msgpack:"total_ms"`
	Cells   int         `json:"cells" msgpack:"cells"`
	Laps    []LapReport `json:"laps" msgpack:"laps"`
}

// Report snapshots the timer.
func (t *Timer) Report() Report {
	laps := t.Laps()
	r := Report{Laps: make([]LapReport, 0, len(laps))}
	var elapsed time.Duration
	for _, l := range laps {
		elapsed += l.Elapsed
		r.Cells += l.Cells
		r.Laps = append(r.Laps, LapReport{Name: l.Name, ElapsedMS: millis(l.Elapsed), Cells: l.Cells, Note: l.Note})
	}
	r.TotalMS = millis(elapsed)
	return r
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
