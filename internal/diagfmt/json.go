package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/kylebutts/s2/internal/diag"
	"github.com/kylebutts/s2/internal/source"
)

// LocationJSON is where a diagnostic points: a file and a zero-based batch
// position. Line is Position+1 for file inputs.
type LocationJSON struct {
	File     string `json:"file,omitempty" msgpack:"file,omitempty"`
	Position *int   `json:"position,omitempty" msgpack:"position,omitempty"`
	Line     int    `json:"line,omitempty" msgpack:"line,omitempty"`
}

// NoteJSON is an additional note.
type NoteJSON struct {
	Message  string       `json:"message" msgpack:"message"`
	Location LocationJSON `json:"location" msgpack:"location"`
}

// DiagnosticJSON is one diagnostic in structured output.
type DiagnosticJSON struct {
	Severity string       `json:"severity" msgpack:"severity"`
	Code     string       `json:"code" msgpack:"code"`
	Title    string       `json:"title" msgpack:"title"`
	Message  string       `json:"message" msgpack:"message"`
	Location LocationJSON `json:"location" msgpack:"location"`
	Input    string       `json:"input,omitempty" msgpack:"input,omitempty"`
	Notes    []NoteJSON   `json:"notes,omitempty" msgpack:"notes,omitempty"`
}

// DiagnosticsOutput is the root of structured output.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics" msgpack:"diagnostics"`
	Count       int              `json:"count" msgpack:"count"`
	Dropped     int              `json:"dropped,omitempty" msgpack:"dropped,omitempty"`
}

func makeLocation(file string, pos int, fs *source.FileSet, mode PathMode) LocationJSON {
	loc := LocationJSON{File: displayPath(file, fs, mode)}
	if pos >= 0 {
		p := pos
		loc.Position = &p
		if file != "" {
			loc.Line = pos + 1
		}
	}
	return loc
}

// BuildDiagnosticsOutput builds the structured output without serializing.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	n := len(items)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}

	diagnostics := make([]DiagnosticJSON, 0, n)
	for _, d := range items[:n] {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Location: makeLocation(d.File, d.Pos, fs, opts.PathMode),
			Input:    inputFor(d.File, d.Pos, d.Input, fs),
		}
		if (opts.IncludeNotes || d.Code == diag.ObsTimings) && len(d.Notes) > 0 {
			dj.Notes = make([]NoteJSON, len(d.Notes))
			for j, note := range d.Notes {
				dj.Notes[j] = NoteJSON{
					Message:  note.Msg,
					Location: makeLocation(d.File, note.Pos, fs, opts.PathMode),
				}
			}
		}
		diagnostics = append(diagnostics, dj)
	}

	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
		Dropped:     bag.Dropped() + len(items) - n,
	}
}

// JSON writes the diagnostics as one indented JSON document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
