package ui

import (
	"strings"
	"testing"

	"github.com/kylebutts/s2/internal/vector"
)

func newTestModel(title string, files ...Entry) *progressModel {
	return NewProgressModel(title, files, make(chan vector.Event)).(*progressModel)
}

func TestPercentIsWeightedByCells(t *testing.T) {
	m := newTestModel("to-token", Entry{Path: "a.txt", Cells: 1000}, Entry{Path: "b.txt", Cells: 1000})

	m.apply(vector.Event{File: "a.txt", Status: vector.StatusWorking, Done: 500, Total: 1000})
	if got := m.percent(); got != 0.25 {
		t.Errorf("percent = %v, want 0.25", got)
	}
	m.apply(vector.Event{File: "b.txt", Status: vector.StatusProblems, Done: 990, Total: 1000, Problems: 3})
	if got := m.percent(); got != 0.75 {
		t.Errorf("percent = %v, want 0.75", got)
	}
	m.apply(vector.Event{File: "unknown.txt", Status: vector.StatusDone})

	view := m.View()
	for _, want := range []string{"to-token", "a.txt", " 50%", "problems", "3 problems", "1,500 of 2,000 cells"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestPercentWithoutCellCounts(t *testing.T) {
	m := newTestModel("level", Entry{Path: "a.txt"}, Entry{Path: "b.txt"})
	if got := m.percent(); got != 0 {
		t.Errorf("percent = %v, want 0", got)
	}
	m.apply(vector.Event{File: "a.txt", Status: vector.StatusCancelled})
	if got := m.percent(); got != 0.5 {
		t.Errorf("percent = %v, want 0.5", got)
	}
}

func TestClosedChannelQuits(t *testing.T) {
	m := newTestModel("level", Entry{Path: "a.txt", Cells: 2})
	next, cmd := m.Update(closedMsg{})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !next.(*progressModel).closed {
		t.Error("model not marked closed")
	}
	if view := next.View(); !strings.Contains(view, "done: level") || !strings.Contains(view, " in ") {
		t.Errorf("view:\n%s", view)
	}
}

func TestEmptyModelRendersNothing(t *testing.T) {
	if got := newTestModel("level").View(); got != "" {
		t.Errorf("view = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefghij", 8); got != "abcde..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abc", 2); got != "ab" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abc", 0); got != "abc" {
		t.Errorf("truncate = %q", got)
	}
}
