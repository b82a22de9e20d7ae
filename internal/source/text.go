package source

import (
	"bytes"
	"strings"
)

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}
	crlf    = []byte("\r\n")
)

// normalize strips a leading UTF-8 byte order mark and turns CRLF line ends
// into LF. Lone CR bytes are kept. The flags say what was changed.
func normalize(content []byte) ([]byte, FileFlags) {
	var flags FileFlags
	if rest, ok := bytes.CutPrefix(content, utf8BOM); ok {
		content = rest
		flags |= FileHadBOM
	}
	if bytes.Contains(content, crlf) {
		content = bytes.ReplaceAll(content, crlf, []byte{'\n'})
		flags |= FileNormalizedCRLF
	}
	return content, flags
}

// splitLines splits normalized content into lines. A trailing newline does
// not start a new element; an empty file has no elements.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return []string{}
	}
	return strings.Split(string(bytes.TrimSuffix(content, []byte{'\n'})), "\n")
}
