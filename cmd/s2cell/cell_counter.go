package main

import (
	"fmt"
	"sync"

	"github.com/kylebutts/s2/internal/observ"
	"github.com/kylebutts/s2/internal/vector"
)

// cellCounter keeps the latest progress of every file so the trace heartbeat
// can say how far a long conversion has come.
type cellCounter struct {
	mu    sync.Mutex
	done  map[string]int
	total map[string]int
}

func newCellCounter() *cellCounter {
	return &cellCounter{done: make(map[string]int), total: make(map[string]int)}
}

func (c *cellCounter) OnEvent(evt vector.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.done[evt.File] = evt.Done
	if evt.Total > 0 {
		c.total[evt.File] = evt.Total
	}
}

func (c *cellCounter) describe() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var done, total int
	for _, n := range c.done {
		done += n
	}
	for _, n := range c.total {
		total += n
	}
	return fmt.Sprintf("%s of %s converted", observ.FormatNumber(done), observ.FormatCount(total, "cell"))
}
