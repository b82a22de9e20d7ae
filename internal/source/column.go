package source

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kylebutts/s2/internal/cellid"
	"github.com/kylebutts/s2/internal/diag"
)

// NA is the textual missing marker. An empty line is missing too.
const NA = "NA"

// IsNA reports whether a trimmed line denotes a missing element.
func IsNA(line string) bool {
	line = strings.TrimSpace(line)
	return line == "" || line == NA
}

// Tokens reads the column as tokens. Missing lines become "".
func (f *File) Tokens() []string {
	out := make([]string, len(f.Lines))
	for i, line := range f.Lines {
		if IsNA(line) {
			continue
		}
		out[i] = strings.TrimSpace(line)
	}
	return out
}

// IDs reads the column as raw identifiers, written in decimal or as 0x-prefixed
// hexadecimal. Missing lines become cellid.Missing; malformed lines are
// reported to r and also become cellid.Missing.
func (f *File) IDs(r diag.Reporter) cellid.Vector {
	out := make(cellid.Vector, len(f.Lines))
	for i, line := range f.Lines {
		if IsNA(line) {
			out[i] = cellid.Missing
			continue
		}
		id, err := ParseID(strings.TrimSpace(line))
		if err != nil {
			f.reportBadLine(r, i, err)
			out[i] = cellid.Missing
			continue
		}
		out[i] = id
	}
	return out
}

// Coordinates reads the column as "lng,lat" pairs. A missing line or a
// missing component yields NaN for both; malformed lines are reported to r.
func (f *File) Coordinates(r diag.Reporter) (lng, lat []float64) {
	lng = make([]float64, len(f.Lines))
	lat = make([]float64, len(f.Lines))
	for i, line := range f.Lines {
		p, err := ParseLngLat(line)
		if err != nil {
			f.reportBadLine(r, i, err)
			p = cellid.MissingLngLat
		}
		lng[i], lat[i] = p.Lng, p.Lat
	}
	return lng, lat
}

func (f *File) reportBadLine(r diag.Reporter, pos int, err error) {
	if r == nil {
		return
	}
	b := diag.Errorf(r, diag.IOBadLine, pos, "%v", err).InFile(f.Path).WithInput(strings.TrimSpace(f.Line(pos)))
	if line, convErr := LineNumber(pos); convErr == nil {
		b = b.WithNote(pos, fmt.Sprintf("line %d", line))
	}
	b.Emit()
}

// ParseID parses a decimal or 0x-prefixed hexadecimal identifier.
func ParseID(s string) (cellid.ID, error) {
	var (
		v   uint64
		err error
	)
	if rest, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		v, err = strconv.ParseUint(rest, 16, 64)
	} else {
		v, err = strconv.ParseUint(s, 10, 64)
	}
	if err != nil {
		return cellid.Missing, fmt.Errorf("malformed cell id %q", s)
	}
	return cellid.ID(v), nil
}

// ParseLngLat parses "lng,lat". NA in either field makes the pair missing.
func ParseLngLat(line string) (cellid.LngLat, error) {
	if IsNA(line) {
		return cellid.MissingLngLat, nil
	}
	lngText, latText, ok := strings.Cut(line, ",")
	if !ok {
		return cellid.MissingLngLat, fmt.Errorf("malformed coordinate %q: want lng,lat", strings.TrimSpace(line))
	}
	lng, err := parseCoord(lngText)
	if err != nil {
		return cellid.MissingLngLat, fmt.Errorf("malformed longitude %q", strings.TrimSpace(lngText))
	}
	lat, err := parseCoord(latText)
	if err != nil {
		return cellid.MissingLngLat, fmt.Errorf("malformed latitude %q", strings.TrimSpace(latText))
	}
	return cellid.LngLat{Lng: lng, Lat: lat}, nil
}

func parseCoord(s string) (float64, error) {
	if IsNA(s) {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
