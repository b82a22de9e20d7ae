package cellid

import (
	"github.com/golang/geo/s2"
)

// ID is a 64-bit S2 cell identifier.
type ID uint64

// Missing marks an absent identifier. Its lowest set bit is at an odd
// position, so no valid cell shares the pattern. It is also the IEEE payload
// hosts use for NA doubles.
const Missing ID = 0x7FF00000000007A2

// None is the identifier of the "no cell" token X.
const None ID = 0

// IsMissing reports whether id is the missing marker.
func (id ID) IsMissing() bool {
	return id == Missing
}

// IsValid reports whether id names a cell of the S2 hierarchy.
func (id ID) IsValid() bool {
	return s2.CellID(id).IsValid()
}

// Level returns the subdivision level (0..30) of a valid cell.
func (id ID) Level() (int, error) {
	if !id.IsValid() {
		return 0, &InvalidCellError{ID: id}
	}
	return s2.CellID(id).Level(), nil
}

// Face returns the cube face (0..5) of a valid cell.
func (id ID) Face() (int, error) {
	if !id.IsValid() {
		return 0, &InvalidCellError{ID: id}
	}
	return s2.CellID(id).Face(), nil
}

// Center returns the centre of a valid cell in degrees.
func (id ID) Center() (LngLat, error) {
	if !id.IsValid() {
		return LngLat{}, &InvalidCellError{ID: id}
	}
	ll := s2.CellID(id).LatLng()
	return LngLat{Lng: ll.Lng.Degrees(), Lat: ll.Lat.Degrees()}, nil
}

// String renders the token form, or "NA" for the missing marker.
func (id ID) String() string {
	if id.IsMissing() {
		return "NA"
	}
	return id.ToToken()
}

// Vector is an identifier batch tagged as a cell vector for downstream
// consumers.
type Vector []ID

// Class is the type marker carried by identifier batches.
const Class = "s2_cell"

// Class returns the type marker of the batch.
func (Vector) Class() string { return Class }

// Len returns the number of positions in the batch.
func (v Vector) Len() int { return len(v) }

// CountMissing returns how many positions hold the missing marker.
func (v Vector) CountMissing() int {
	n := 0
	for _, id := range v {
		if id.IsMissing() {
			n++
		}
	}
	return n
}
