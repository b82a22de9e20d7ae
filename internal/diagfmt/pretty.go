package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/kylebutts/s2/internal/diag"
	"github.com/kylebutts/s2/internal/observ"
	"github.com/kylebutts/s2/internal/source"
)

// Pretty renders diagnostics for a terminal. It walks bag.Items() in order
// (call bag.Sort() first). Each diagnostic prints as
//
//	error[CEL1002]: invalid token
//	  --> tokens.txt:2 (position 1)
//	   |
//	 2 | INVALID
//	   = note: invalid token "INVALID": token contains a non-hexadecimal character
//
// followed by a one-line summary.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	var sb strings.Builder

	for _, d := range bag.Items() {
		sev := strings.ToLower(d.Severity.String())
		sb.WriteString(p.severity(d.Severity).Sprintf("%s[%s]", sev, d.Code.ID()))
		sb.WriteString(p.bold.Sprintf(": %s", d.Message))
		sb.WriteString("\n")

		path := displayPath(d.File, fs, opts.PathMode)
		input := inputFor(d.File, d.Pos, d.Input, fs)
		gutter := ""
		if d.Pos >= 0 {
			gutter = strconv.Itoa(d.Pos + 1)
		}
		pad := strings.Repeat(" ", runewidth.StringWidth(gutter))

		switch {
		case path != "" && d.Pos >= 0:
			fmt.Fprintf(&sb, "%s%s %s:%d (position %d)\n", pad, p.accent.Sprint("-->"), path, d.Pos+1, d.Pos)
		case path != "":
			fmt.Fprintf(&sb, "%s%s %s\n", pad, p.accent.Sprint("-->"), path)
		case d.Pos >= 0:
			fmt.Fprintf(&sb, "%s%s position %d\n", pad, p.accent.Sprint("-->"), d.Pos)
		}

		if d.Pos >= 0 && input != "" {
			fmt.Fprintf(&sb, "%s %s\n", pad, p.accent.Sprint("|"))
			fmt.Fprintf(&sb, "%s %s %s\n", p.accent.Sprint(gutter), p.accent.Sprint("|"), truncate(input, int(opts.Width)))
		}

		if opts.ShowNotes || d.Code == diag.ObsTimings {
			for _, n := range d.Notes {
				fmt.Fprintf(&sb, "%s %s %s\n", pad, p.accent.Sprint("="), p.bold.Sprint("note: ")+n.Msg)
			}
		}
	}

	sb.WriteString(summary(bag))
	_, err := io.WriteString(w, sb.String())
	return err
}

// summary is the closing line of a report, or "" for an empty bag.
func summary(bag *diag.Bag) string {
	total := bag.Len() + bag.Dropped()
	if total == 0 {
		return ""
	}
	line := "found " + observ.FormatCount(total, "problem")
	if bag.Dropped() > 0 {
		line += fmt.Sprintf(" (%s not shown)", observ.FormatNumber(bag.Dropped()))
	}
	return line + "\n"
}

// truncate shortens s to width display cells. A width of 0 disables it.
func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

type palette struct {
	err    *color.Color
	warn   *color.Color
	info   *color.Color
	bold   *color.Color
	accent *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		bold:   color.New(color.Bold),
		accent: color.New(color.FgBlue, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.bold, p.accent} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}
