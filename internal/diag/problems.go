package diag

import (
	"errors"
	"fmt"
	"strings"
)

// ErrProblems matches every *Problems.
var ErrProblems = errors.New("batch problems")

// listedProblems is how many entries Problems.Error spells out.
const listedProblems = 10

// Problems is the consolidated diagnostic of a batch pass whose failure log
// was not empty. Items keep the scan order, so positions strictly increase.
type Problems struct {
	Op    string
	Items []Diagnostic
}

func (p *Problems) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Items)
}

// Positions returns the failed positions in scan order.
func (p *Problems) Positions() []int {
	out := make([]int, len(p.Items))
	for i, d := range p.Items {
		out[i] = d.Pos
	}
	return out
}

// Messages returns the failure messages in scan order.
func (p *Problems) Messages() []string {
	out := make([]string, len(p.Items))
	for i, d := range p.Items {
		out[i] = d.Message
	}
	return out
}

func (p *Problems) Error() string {
	n := len(p.Items)
	noun := "problems"
	if n == 1 {
		noun = "problem"
	}
	var b strings.Builder
	if p.Op != "" {
		fmt.Fprintf(&b, "found %d %s processing cells (%s):", n, noun, p.Op)
	} else {
		fmt.Fprintf(&b, "found %d %s processing cells:", n, noun)
	}
	for i, d := range p.Items {
		if i == listedProblems {
			fmt.Fprintf(&b, "\n...and %d more", n-listedProblems)
			break
		}
		fmt.Fprintf(&b, "\n[%d] %s", d.Pos, d.Message)
	}
	return b.String()
}

func (p *Problems) Is(target error) bool { return target == ErrProblems }

// ProblemReporter turns a batch failure log into a *Problems error. It is the
// default reporter of internal/vector operators.
type ProblemReporter struct {
	Op string
}

// ReportProblems returns nil for an empty log and *Problems otherwise.
func (r ProblemReporter) ReportProblems(positions []int, messages []string) error {
	if len(positions) != len(messages) {
		return fmt.Errorf("diag: %d problem positions but %d messages", len(positions), len(messages))
	}
	if len(positions) == 0 {
		return nil
	}
	items := make([]Diagnostic, len(positions))
	for i, pos := range positions {
		items[i] = NewError(CodeForMessage(messages[i]), pos, messages[i])
	}
	return &Problems{Op: r.Op, Items: items}
}

// AsProblems unwraps err into *Problems.
func AsProblems(err error) (*Problems, bool) {
	var p *Problems
	if errors.As(err, &p) {
		return p, true
	}
	return nil, false
}
