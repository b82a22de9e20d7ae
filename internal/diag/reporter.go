package diag

import "fmt"

// Reporter receives diagnostics as they are found, such as malformed lines
// while a column is read. *Bag is a Reporter.
type Reporter interface {
	Report(d Diagnostic)
}

// Report adds d to the bag.
func (b *Bag) Report(d Diagnostic) { b.Add(d) }

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) { f(d) }

// Discard drops every diagnostic.
var Discard Reporter = ReporterFunc(func(Diagnostic) {})

// ReportBuilder assembles one diagnostic and hands it to a Reporter on Emit.
// A nil Reporter makes every step a no-op.
type ReportBuilder struct {
	r    Reporter
	d    Diagnostic
	sent bool
}

// Errorf starts an error diagnostic at pos.
func Errorf(r Reporter, code Code, pos int, format string, args ...any) *ReportBuilder {
	return &ReportBuilder{r: r, d: NewError(code, pos, fmt.Sprintf(format, args...))}
}

// Warnf starts a warning diagnostic at pos.
func Warnf(r Reporter, code Code, pos int, format string, args ...any) *ReportBuilder {
	return &ReportBuilder{r: r, d: New(SevWarning, code, pos, fmt.Sprintf(format, args...))}
}

func (b *ReportBuilder) InFile(file string) *ReportBuilder {
	b.d = b.d.WithFile(file)
	return b
}

func (b *ReportBuilder) WithInput(input string) *ReportBuilder {
	b.d = b.d.WithInput(input)
	return b
}

func (b *ReportBuilder) WithNote(pos int, msg string) *ReportBuilder {
	b.d = b.d.WithNote(pos, msg)
	return b
}

// Emit reports the diagnostic once; later calls do nothing.
func (b *ReportBuilder) Emit() {
	if b.sent || b.r == nil {
		return
	}
	b.sent = true
	b.r.Report(b.d)
}

// Diagnostic returns the diagnostic built so far without reporting it.
func (b *ReportBuilder) Diagnostic() Diagnostic { return b.d }
