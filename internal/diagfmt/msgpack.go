package diagfmt

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/kylebutts/s2/internal/diag"
	"github.com/kylebutts/s2/internal/source"
)

// Msgpack writes the same document as JSON, msgpack-encoded, for tools that
// post-process large problem reports.
func Msgpack(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := msgpack.NewEncoder(w)
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}

// DecodeMsgpack reads a document written by Msgpack.
func DecodeMsgpack(r io.Reader) (DiagnosticsOutput, error) {
	var out DiagnosticsOutput
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&out); err != nil {
		return DiagnosticsOutput{}, err
	}
	return out, nil
}
