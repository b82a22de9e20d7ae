package driver

import (
	"context"
	"errors"
	"fmt"

	"github.com/kylebutts/s2/internal/cellid"
	"github.com/kylebutts/s2/internal/vector"
)

// ErrLengthMismatch is returned when coordinate columns differ in length.
var ErrLengthMismatch = errors.New("coordinate columns differ in length")

// FromTokens decodes a batch of tokens. "" is missing. Under PolicyIsolate
// malformed tokens become cellid.Missing and are reported together after
// the pass; the output is returned along with the reporter's error. Under
// PolicyStrict the first malformed token fails the call with an
// *ElementError and no output.
func FromTokens(ctx context.Context, tokens []string, opts Options) (cellid.Vector, error) {
	defer opts.phase("from-token", len(tokens))()
	if opts.Policy == PolicyStrict {
		return direct(ctx, "from-token", vector.Tokens, vector.IDs, cellid.FromToken, tokens, opts)
	}
	return vector.New("from-token", vector.Tokens, vector.IDs, cellid.FromToken, opts.config()).Run(ctx, tokens)
}

// FromLngLat encodes parallel longitude and latitude columns as leaf cells.
// A position where either component is NaN or infinite is missing. The
// conversion never fails per element.
func FromLngLat(ctx context.Context, lng, lat []float64, opts Options) (cellid.Vector, error) {
	if len(lng) != len(lat) {
		return nil, fmt.Errorf("%w: %d longitudes, %d latitudes", ErrLengthMismatch, len(lng), len(lat))
	}
	points := make([]cellid.LngLat, len(lng))
	for i := range lng {
		points[i] = cellid.LngLat{Lng: lng[i], Lat: lat[i]}
	}
	return FromPoints(ctx, points, opts)
}

// FromPoints is FromLngLat over a single column of pairs.
func FromPoints(ctx context.Context, points []cellid.LngLat, opts Options) (cellid.Vector, error) {
	defer opts.phase("from-lnglat", len(points))()
	return direct(ctx, "from-lnglat", vector.Points, vector.IDs, encodePoint, points, opts)
}

func encodePoint(p cellid.LngLat) (cellid.ID, error) {
	return cellid.FromLngLat(p.Lng, p.Lat)
}

// ToTokens renders every id as a token. Missing ids give "".
func ToTokens(ctx context.Context, ids []cellid.ID, opts Options) ([]string, error) {
	defer opts.phase("to-token", len(ids))()
	return vector.New("to-token", vector.IDs, vector.Tokens, idToken, opts.config()).Run(ctx, ids)
}

func idToken(id cellid.ID) (string, error) { return id.ToToken(), nil }

// IsValid classifies every id. Missing ids give vector.Unknown. The
// predicate never fails, so the only error is cancellation.
func IsValid(ctx context.Context, ids []cellid.ID, opts Options) ([]vector.Flag, error) {
	defer opts.phase("is-valid", len(ids))()
	return vector.New("is-valid", vector.IDs, vector.Flags, validity, opts.config()).Run(ctx, ids)
}

func validity(id cellid.ID) (vector.Flag, error) { return vector.FlagOf(id.IsValid()), nil }

// ToLngLat returns the center of every cell. Invalid cells are missing and
// reported after the pass.
func ToLngLat(ctx context.Context, ids []cellid.ID, opts Options) ([]cellid.LngLat, error) {
	defer opts.phase("to-lnglat", len(ids))()
	return vector.New("to-lnglat", vector.IDs, vector.Points, cellid.ID.Center, opts.config()).Run(ctx, ids)
}

// Levels returns the subdivision level of every cell. Invalid cells are
// missing and reported after the pass.
func Levels(ctx context.Context, ids []cellid.ID, opts Options) ([]int, error) {
	defer opts.phase("level", len(ids))()
	return vector.New("level", vector.IDs, vector.Levels, cellid.ID.Level, opts.config()).Run(ctx, ids)
}

// phase starts a timer lap and returns the function that stops it. A nil
// Timer makes both no-ops.
func (o Options) phase(name string, cells int) func() {
	sw := o.Timer.Start(name)
	return func() { sw.Stop(o.phaseNote, cells) }
}
