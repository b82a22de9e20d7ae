package trace

import (
	"strconv"
	"sync"
	"time"
)

// Heartbeat records a beat at a fixed interval while a command runs, so a
// stalled pass over a large column can be told apart from a slow one.
type Heartbeat struct {
	tracer Tracer
	probe  func() string
	stop   chan struct{}
	done   chan struct{}
	once   sync.Once
}

// StartHeartbeat starts beating into tracer every interval. probe, when not
// nil, describes progress in each beat, e.g. the cells converted so far.
// It returns nil when tracing is off or interval is not positive; Stop on
// a nil Heartbeat is a no-op.
func StartHeartbeat(tracer Tracer, interval time.Duration, probe func() string) *Heartbeat {
	if !Enabled(tracer) || interval <= 0 {
		return nil
	}
	h := &Heartbeat{
		tracer: tracer,
		probe:  probe,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go h.run(time.NewTicker(interval))
	return h
}

func (h *Heartbeat) run(ticker *time.Ticker) {
	defer close(h.done)
	defer ticker.Stop()

	var beats uint64
	for {
		select {
		case now := <-ticker.C:
			beats++
			detail := "beat " + strconv.FormatUint(beats, 10)
			if h.probe != nil {
				detail += ": " + h.probe()
			}
			h.tracer.Emit(&Event{Time: now, Kind: KindHeartbeat, Scope: ScopeDriver, Name: "heartbeat", Detail: detail})
		case <-h.stop:
			return
		}
	}
}

// Stop ends the heartbeat and waits for its goroutine.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	<-h.done
}
