package diagfmt

import (
	"io"

	"github.com/kylebutts/s2/internal/diag"
	"github.com/kylebutts/s2/internal/source"
)

// Short writes one line per diagnostic followed by the summary line.
func Short(w io.Writer, bag *diag.Bag, includeNotes bool) error {
	out := diag.FormatShortDiagnostics(bag.Items(), includeNotes)
	if out != "" {
		out += "\n"
	}
	out += summary(bag)
	_, err := io.WriteString(w, out)
	return err
}

// Write renders bag in format f.
func Write(w io.Writer, f Format, bag *diag.Bag, fs *source.FileSet, pretty PrettyOpts, structured JSONOpts) error {
	switch f {
	case FormatJSON:
		return JSON(w, bag, fs, structured)
	case FormatMsgpack:
		return Msgpack(w, bag, fs, structured)
	case FormatShort:
		return Short(w, bag, pretty.ShowNotes)
	}
	return Pretty(w, bag, fs, pretty)
}
