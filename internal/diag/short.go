package diag

import (
	"fmt"
	"strings"
)

// FormatShortDiagnostics renders diagnostics one per line:
//
//	<severity> <code> <location> <message>
//
// Notes follow their diagnostic as "note" lines when includeNotes is set.
// Line breaks inside messages are folded into spaces. The result is empty
// when there is nothing to render.
func FormatShortDiagnostics(diags []Diagnostic, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}
	lines := make([]string, 0, len(diags))
	for _, d := range diags {
		lines = append(lines, shortLine(severityLabel(d.Severity), d.Code.ID(), d.Location(), d.Message))
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			loc := Diagnostic{File: d.File, Pos: n.Pos}.Location()
			lines = append(lines, shortLine("note", d.Code.ID(), loc, n.Msg))
		}
	}
	return strings.Join(lines, "\n")
}

func shortLine(sev, code, loc, msg string) string {
	msg = strings.Join(strings.Fields(msg), " ")
	if loc == "" {
		return fmt.Sprintf("%s %s %s", sev, code, msg)
	}
	return fmt.Sprintf("%s %s %s %s", sev, code, loc, msg)
}

func severityLabel(sev Severity) string {
	return strings.ToLower(sev.String())
}
