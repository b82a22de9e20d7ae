package diag

import "fmt"

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	SevInfo Severity = iota // timings and other notices
	SevWarning
	SevError // the element or pass failed
)

var severityNames = [...]string{SevInfo: "INFO", SevWarning: "WARNING", SevError: "ERROR"}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// NoPos marks a diagnostic that is not tied to a batch position.
const NoPos = -1

type Note struct {
	Pos int
	Msg string
}

// Diagnostic is one finding about a batch. Pos is the zero-based position in
// the input batch; File names the input the batch was read from, if any.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	File     string
	Pos      int
	Input    string
	Notes    []Note
}

func New(sev Severity, code Code, pos int, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Pos:      pos,
		Message:  msg,
	}
}

func NewError(code Code, pos int, msg string) Diagnostic {
	return New(SevError, code, pos, msg)
}

func (d Diagnostic) WithNote(pos int, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Pos: pos, Msg: msg})
	return d
}

func (d Diagnostic) WithFile(file string) Diagnostic {
	d.File = file
	return d
}

func (d Diagnostic) WithInput(input string) Diagnostic {
	d.Input = input
	return d
}

// Location renders "file:pos", "file", "#pos" or "" depending on what is set.
func (d Diagnostic) Location() string {
	switch {
	case d.File != "" && d.Pos >= 0:
		return fmt.Sprintf("%s:%d", d.File, d.Pos)
	case d.File != "":
		return d.File
	case d.Pos >= 0:
		return fmt.Sprintf("#%d", d.Pos)
	}
	return ""
}
