package vector

import (
	"github.com/kylebutts/s2/internal/cellid"
)

// Domain names an element type and the marker it uses for absent values.
type Domain[T any] struct {
	Name      string
	Missing   T
	IsMissing func(T) bool
}

// missing reports whether v is absent. A domain without a predicate has no
// missing values.
func (d Domain[T]) missing(v T) bool {
	return d.IsMissing != nil && d.IsMissing(v)
}

// Flag is a tri-state boolean result.
type Flag int8

const (
	False   Flag = 0
	True    Flag = 1
	Unknown Flag = -1
)

// FlagOf converts a bool.
func FlagOf(b bool) Flag {
	if b {
		return True
	}
	return False
}

func (f Flag) String() string {
	switch f {
	case True:
		return "TRUE"
	case False:
		return "FALSE"
	}
	return "NA"
}

// MissingLevel marks an absent cell level.
const MissingLevel = -1

var (
	// IDs is the domain of cell identifier batches.
	IDs = Domain[cellid.ID]{Name: "cell", Missing: cellid.Missing, IsMissing: cellid.ID.IsMissing}
	// Tokens is the domain of token batches; the empty string is missing.
	Tokens = Domain[string]{Name: "token", Missing: "", IsMissing: func(s string) bool { return s == "" }}
	// Flags is the domain of validity batches.
	Flags = Domain[Flag]{Name: "flag", Missing: Unknown, IsMissing: func(f Flag) bool { return f == Unknown }}
	// Points is the domain of coordinate batches; any non-finite component
	// is missing.
	Points = Domain[cellid.LngLat]{Name: "lnglat", Missing: cellid.MissingLngLat, IsMissing: cellid.LngLat.IsMissing}
	// Levels is the domain of cell level batches.
	Levels = Domain[int]{Name: "level", Missing: MissingLevel, IsMissing: func(l int) bool { return l == MissingLevel }}
)
