package diagfmt

import "github.com/kylebutts/s2/internal/source"

// displayPath renders the file of a diagnostic. Files unknown to fs are
// printed as given.
func displayPath(path string, fs *source.FileSet, mode PathMode) string {
	if path == "" || fs == nil {
		return path
	}
	id, ok := fs.GetLatest(path)
	if !ok {
		return path
	}
	f := fs.Get(id)
	if f == nil {
		return path
	}
	return f.FormatPath(mode.String(), fs.BaseDir())
}

// inputFor returns the echoed input of a diagnostic, from the diagnostic
// itself or from the loaded file.
func inputFor(path string, pos int, input string, fs *source.FileSet) string {
	if input != "" || fs == nil || pos < 0 {
		return input
	}
	id, ok := fs.GetLatest(path)
	if !ok {
		return ""
	}
	if f := fs.Get(id); f != nil {
		return f.Line(pos)
	}
	return ""
}
