package source

import (
	"fmt"
	"io"
	"os"
	"sync"

	"fortio.org/safecast"
)

// StdinName is the path stdin is registered under.
const StdinName = "<stdin>"

// FileSet holds the input columns of one command. It is safe for concurrent
// use, since files are loaded by parallel workers.
type FileSet struct {
	mu      sync.RWMutex
	files   []*File
	latest  map[string]FileID
	baseDir string
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{latest: make(map[string]FileID)}
}

// NewFileSetWithBase creates a FileSet whose relative paths resolve against
// baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

// BaseDir returns the base directory, defaulting to the working directory.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir != "" {
		return fs.baseDir
	}
	return cwd()
}

// Add stores content as a new file and returns its id. Content is taken as
// is; use Load, LoadReader or AddVirtual to normalize it first. Adding the
// same path twice creates a new version.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) (FileID, error) {
	key := path
	if flags&FileVirtual == 0 {
		key = cleanPath(path)
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		return 0, fmt.Errorf("too many input files: %w", err)
	}
	id := FileID(n)
	fs.files = append(fs.files, &File{ID: id, Path: key, Lines: splitLines(content), Flags: flags})
	fs.latest[key] = id
	return id, nil
}

// Load reads a file from disk and adds it.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return fs.addNormalized(path, content, 0)
}

// LoadReader reads r to EOF and adds it as a virtual file named name.
func (fs *FileSet) LoadReader(name string, r io.Reader) (FileID, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", name, err)
	}
	return fs.addNormalized(name, content, FileVirtual)
}

// AddVirtual adds in-memory content with the FileVirtual flag.
func (fs *FileSet) AddVirtual(name string, content []byte) (FileID, error) {
	return fs.addNormalized(name, content, FileVirtual)
}

func (fs *FileSet) addNormalized(path string, content []byte, flags FileFlags) (FileID, error) {
	content, changed := normalize(content)
	return fs.Add(path, content, flags|changed)
}

// Get returns the file for id, or nil if there is none.
func (fs *FileSet) Get(id FileID) *File {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if int(id) < len(fs.files) {
		return fs.files[id]
	}
	return nil
}

// GetLatest returns the id of the newest file loaded for path.
func (fs *FileSet) GetLatest(path string) (FileID, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if id, ok := fs.latest[cleanPath(path)]; ok {
		return id, true
	}
	id, ok := fs.latest[path]
	return id, ok
}

// Len returns the number of loaded files.
func (fs *FileSet) Len() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return len(fs.files)
}

// Line returns the text at 0-based position pos, or "" when out of range.
func (f *File) Line(pos int) string {
	if pos < 0 || pos >= len(f.Lines) {
		return ""
	}
	return f.Lines[pos]
}

// LineNumber converts a 0-based position to a 1-based line number.
func LineNumber(pos int) (uint32, error) {
	return safecast.Conv[uint32](pos + 1)
}
