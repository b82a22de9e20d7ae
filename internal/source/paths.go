package source

import (
	"os"
	"path/filepath"
)

// shortPathLimit is the length below which "auto" keeps the path as given.
const shortPathLimit = 40

func cleanPath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

func cwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// pathFormatters render a file path for diagnostics, keyed by path mode.
// A formatter that fails falls back to the path as loaded.
var pathFormatters = map[string]func(path, baseDir string) (string, error){
	"absolute": func(path, _ string) (string, error) {
		return filepath.Abs(path)
	},
	"relative": func(path, baseDir string) (string, error) {
		if baseDir == "" {
			baseDir = cwd()
		}
		base, err := filepath.Abs(baseDir)
		if err != nil {
			return "", err
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", err
		}
		return filepath.Rel(base, abs)
	},
	"basename": func(path, _ string) (string, error) {
		return filepath.Base(path), nil
	},
	"auto": func(path, _ string) (string, error) {
		if len(path) < shortPathLimit || !filepath.IsAbs(path) {
			return path, nil
		}
		return filepath.Base(path), nil
	},
}

// FormatPath renders the file path in mode "absolute", "relative",
// "basename" or "auto". Virtual files always keep their name.
func (f *File) FormatPath(mode, baseDir string) string {
	format, ok := pathFormatters[mode]
	if !ok || f.Flags&FileVirtual != 0 {
		return f.Path
	}
	p, err := format(f.Path, baseDir)
	if err != nil {
		return f.Path
	}
	return filepath.ToSlash(p)
}
