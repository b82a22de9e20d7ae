package source

import (
	"bufio"
	"io"
	"strconv"

	"github.com/kylebutts/s2/internal/cellid"
)

// ColumnWriter writes one element per line. Missing elements are written as NA.
type ColumnWriter struct {
	w   *bufio.Writer
	err error
}

// NewColumnWriter wraps w in a buffered column writer.
func NewColumnWriter(w io.Writer) *ColumnWriter {
	return &ColumnWriter{w: bufio.NewWriter(w)}
}

// WriteLine writes s, or NA when s is empty.
func (cw *ColumnWriter) WriteLine(s string) {
	if cw.err != nil {
		return
	}
	if s == "" {
		s = NA
	}
	if _, err := cw.w.WriteString(s); err != nil {
		cw.err = err
		return
	}
	cw.err = cw.w.WriteByte('\n')
}

// Flush writes buffered lines and returns the first error seen.
func (cw *ColumnWriter) Flush() error {
	if cw.err != nil {
		return cw.err
	}
	return cw.w.Flush()
}

// FormatID renders an identifier in decimal, or "" when missing.
func FormatID(id cellid.ID) string {
	if id.IsMissing() {
		return ""
	}
	return strconv.FormatUint(uint64(id), 10)
}

// FormatLngLat renders "lng,lat", or "" when missing.
func FormatLngLat(p cellid.LngLat) string {
	if p.IsMissing() {
		return ""
	}
	return p.String()
}

// FormatLevel renders a level, or "" when missing.
func FormatLevel(level int) string {
	if level < 0 {
		return ""
	}
	return strconv.Itoa(level)
}
