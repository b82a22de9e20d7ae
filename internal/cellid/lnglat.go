package cellid

import (
	"math"

	"github.com/golang/geo/s2"
)

// LngLat is a coordinate pair in degrees.
type LngLat struct {
	Lng float64
	Lat float64
}

// MissingLngLat is the pair returned for absent positions.
var MissingLngLat = LngLat{Lng: math.NaN(), Lat: math.NaN()}

// IsMissing reports whether either component is NaN or infinite.
func (p LngLat) IsMissing() bool {
	return !isFinite(p.Lng) || !isFinite(p.Lat)
}

// Normalized clamps the latitude to [-90, 90] and wraps the longitude into
// [-180, 180].
func (p LngLat) Normalized() LngLat {
	ll := s2.LatLngFromDegrees(p.Lat, p.Lng).Normalized()
	return LngLat{Lng: ll.Lng.Degrees(), Lat: ll.Lat.Degrees()}
}

// FromLngLat encodes a coordinate pair as a leaf cell identifier. Non-finite
// components return a *DecodeError; batch entry points treat them as missing
// before this is reached.
func FromLngLat(lng, lat float64) (ID, error) {
	if !isFinite(lng) || !isFinite(lat) {
		return 0, &DecodeError{Kind: DecodeCoordinate, Input: formatFloat(lng) + "," + formatFloat(lat), Reason: "coordinates must be finite"}
	}
	ll := s2.LatLngFromDegrees(lat, lng).Normalized()
	return ID(s2.CellIDFromLatLng(ll)), nil
}

// String renders the pair as "lng,lat".
func (p LngLat) String() string {
	if p.IsMissing() {
		return "NA"
	}
	return formatFloat(p.Lng) + "," + formatFloat(p.Lat)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
