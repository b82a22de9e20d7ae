package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/kylebutts/s2/internal/observ"
	"github.com/kylebutts/s2/internal/vector"
)

// Entry is one input file of the progress view. Cells is its element count,
// which weights the file in the overall bar.
type Entry struct {
	Path  string
	Cells int
}

type row struct {
	Entry
	status   vector.Status
	done     int
	problems int
}

func (r row) finished() bool {
	switch r.status {
	case vector.StatusDone, vector.StatusProblems, vector.StatusCancelled:
		return true
	}
	return false
}

type progressModel struct {
	title   string
	events  <-chan vector.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []row
	byPath  map[string]int
	width   int
	started time.Time
	elapsed time.Duration
	closed  bool
}

type eventMsg vector.Event
type closedMsg struct{}

const statusWidth = 10

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyles = map[vector.Status]lipgloss.Style{
		vector.StatusQueued:    lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		vector.StatusWorking:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		vector.StatusDone:      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		vector.StatusProblems:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		vector.StatusCancelled: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	}
)

// NewProgressModel returns a Bubble Tea model that shows the passes over
// files as they run. It quits once events is closed.
func NewProgressModel(title string, files []Entry, events <-chan vector.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = statusStyles[vector.StatusWorking]

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	rows := make([]row, len(files))
	byPath := make(map[string]int, len(files))
	for i, f := range files {
		rows[i] = row{Entry: f, status: vector.StatusQueued}
		byPath[f.Path] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		rows:    rows,
		byPath:  byPath,
		width:   80,
		started: time.Now(),
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		m.apply(vector.Event(msg))
		return m, tea.Batch(m.bar.SetPercent(m.percent()), m.next())
	case closedMsg:
		m.closed = true
		m.elapsed = time.Since(m.started)
		return m, tea.Quit
	case spinner.TickMsg:
		if m.closed {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		m.width = max(msg.Width, 40)
		m.bar.Width = m.width - 4
		return m, nil
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// next waits for the following event, or reports the channel closed.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) apply(ev vector.Event) {
	idx, ok := m.byPath[ev.File]
	if !ok {
		return
	}
	r := &m.rows[idx]
	if ev.Total > 0 {
		r.Cells = ev.Total
	}
	r.status = ev.Status
	r.done = ev.Done
	r.problems = ev.Problems
	if r.status == vector.StatusDone || r.status == vector.StatusProblems {
		r.done = r.Cells
	}
}

// percent is the share of all cells converted so far. Without any cell
// counts it falls back to the share of finished files.
func (m *progressModel) percent() float64 {
	var done, total, finished int
	for _, r := range m.rows {
		done += r.done
		total += r.Cells
		if r.finished() {
			finished++
		}
	}
	switch {
	case total > 0:
		return float64(done) / float64(total)
	case len(m.rows) > 0:
		return float64(finished) / float64(len(m.rows))
	}
	return 0
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	var b strings.Builder
	if m.closed {
		b.WriteString(titleStyle.Render("done: " + m.title))
	} else {
		b.WriteString(m.spinner.View() + " " + titleStyle.Render(m.title))
	}
	b.WriteString("\n\n")

	countWidth := 24
	nameWidth := max(m.width-statusWidth-countWidth-6, 20)
	var done, total, problems int
	for _, r := range m.rows {
		done += r.done
		total += r.Cells
		problems += r.problems

		status := statusStyles[r.status].Render(runewidth.FillLeft(statusLabel(r), statusWidth))
		name := runewidth.FillRight(truncate(r.Path, nameWidth), nameWidth)
		fmt.Fprintf(&b, "  %s %s  %s\n", status, name, rowDetail(r))
	}

	b.WriteString("\n")
	if m.closed {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")

	summary := fmt.Sprintf("%s of %s", observ.FormatNumber(done), observ.FormatCount(total, "cell"))
	if problems > 0 {
		summary += ", " + observ.FormatCount(problems, "problem")
	}
	if m.closed {
		summary += fmt.Sprintf(" in %s", m.elapsed.Round(time.Millisecond))
	}
	b.WriteString(dimStyle.Render(summary))
	b.WriteString("\n")
	return b.String()
}

func statusLabel(r row) string {
	if r.status == vector.StatusWorking && r.Cells > 0 {
		return fmt.Sprintf("%3.0f%%", float64(r.done)*100/float64(r.Cells))
	}
	return string(r.status)
}

func rowDetail(r row) string {
	if r.problems > 0 {
		return statusStyles[vector.StatusProblems].Render(observ.FormatCount(r.problems, "problem"))
	}
	return dimStyle.Render(observ.FormatCount(r.Cells, "cell"))
}

// truncate shortens value to width display cells.
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
