package diag

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"fortio.org/safecast"
)

// Bag collects diagnostics from one or more batch passes, up to a cap.
// Diagnostics past the cap are counted, not kept.
type Bag struct {
	items   []Diagnostic
	limit   uint16
	dropped int
}

// NewBag returns a bag holding at most max diagnostics. Caps outside the
// uint16 range are clamped.
func NewBag(max int) *Bag {
	limit, err := safecast.Conv[uint16](max)
	if err != nil {
		limit = 0
		if max > 0 {
			limit = math.MaxUint16
		}
	}
	return &Bag{items: make([]Diagnostic, 0, min(int(limit), 64)), limit: limit}
}

// Add appends d and reports whether it fit under the cap.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) == int(b.limit) {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Cap is the most diagnostics the bag keeps.
func (b *Bag) Cap() uint16 { return b.limit }

// Dropped returns how many diagnostics did not fit under the cap.
func (b *Bag) Dropped() int { return b.dropped }

func (b *Bag) Len() int { return len(b.items) }

// Items returns the backing slice. Callers must not modify it.
func (b *Bag) Items() []Diagnostic { return b.items }

// HasErrors reports whether any kept diagnostic is an error.
func (b *Bag) HasErrors() bool { return b.atLeast(SevError) }

// HasWarnings reports whether any kept diagnostic is a warning or worse.
func (b *Bag) HasWarnings() bool { return b.atLeast(SevWarning) }

func (b *Bag) atLeast(sev Severity) bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= sev })
}

// Collect appends the diagnostics of other under the cap of b. Diagnostics
// other had already dropped count as dropped here too.
func (b *Bag) Collect(other *Bag) {
	if other == nil {
		return
	}
	for _, d := range other.items {
		b.Add(d)
	}
	b.dropped += other.dropped
}

// AddProblems appends one diagnostic per entry of p, tagged with file. When
// input is not nil it supplies the offending input text of each position.
func (b *Bag) AddProblems(file string, p *Problems, input func(pos int) string) {
	if p == nil {
		return
	}
	for _, d := range p.Items {
		d = d.WithFile(file)
		if input != nil {
			d = d.WithInput(input(d.Pos))
		}
		b.Add(d)
	}
}

// Sort orders diagnostics by file and position, then puts the most severe
// first and breaks ties by code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			strings.Compare(x.File, y.File),
			cmp.Compare(x.Pos, y.Pos),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}
