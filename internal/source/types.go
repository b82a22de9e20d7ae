package source

type (
	// FileID identifies an input file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about an input file.
	FileFlags uint8
)

const (
	// FileVirtual marks a file added from memory (stdin, tests).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File is one loaded input column: one element per line.
type File struct {
	ID    FileID
	Path  string
	Lines []string
	Flags FileFlags
}

// Len returns the number of elements in the column.
func (f *File) Len() int { return len(f.Lines) }
