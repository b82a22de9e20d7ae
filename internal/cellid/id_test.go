package cellid

import (
	"errors"
	"math"
	"testing"
)

func TestRoundTripThroughToken(t *testing.T) {
	points := []LngLat{
		{Lng: -122.4, Lat: 37.7},
		{Lng: 0, Lat: 0},
		{Lng: 179.999, Lat: -89.5},
		{Lng: -180, Lat: 90},
		{Lng: 540, Lat: 12},
		{Lng: 2.35, Lat: 48.85},
	}
	for _, p := range points {
		id, err := FromLngLat(p.Lng, p.Lat)
		if err != nil {
			t.Fatalf("FromLngLat(%v): %v", p, err)
		}
		back, err := FromToken(id.ToToken())
		if err != nil {
			t.Fatalf("FromToken(%q): %v", id.ToToken(), err)
		}
		if back != id {
			t.Errorf("round trip of %v: got %#x, want %#x", p, uint64(back), uint64(id))
		}
	}
}

func TestFromLngLatIsLeaf(t *testing.T) {
	id, err := FromLngLat(-122.4, 37.7)
	if err != nil {
		t.Fatalf("FromLngLat: %v", err)
	}
	if !id.IsValid() {
		t.Fatalf("%s is not a valid cell", id)
	}
	level, err := id.Level()
	if err != nil {
		t.Fatalf("Level: %v", err)
	}
	if level != 30 {
		t.Errorf("Level() = %d, want 30", level)
	}
	c, err := id.Center()
	if err != nil {
		t.Fatalf("Center: %v", err)
	}
	if math.Abs(c.Lng+122.4) > 1e-6 || math.Abs(c.Lat-37.7) > 1e-6 {
		t.Errorf("Center() = %v, want close to -122.4,37.7", c)
	}
}

func TestNormalized(t *testing.T) {
	tests := []struct {
		in   LngLat
		want LngLat
	}{
		{in: LngLat{Lng: -122.4 + 360, Lat: 37.7}, want: LngLat{Lng: -122.4, Lat: 37.7}},
		{in: LngLat{Lng: 10, Lat: 120}, want: LngLat{Lng: 10, Lat: 90}},
		{in: LngLat{Lng: 10, Lat: -95}, want: LngLat{Lng: 10, Lat: -90}},
		{in: LngLat{Lng: 190, Lat: 0}, want: LngLat{Lng: -170, Lat: 0}},
	}
	for _, tt := range tests {
		got := tt.in.Normalized()
		if math.Abs(got.Lng-tt.want.Lng) > 1e-9 || math.Abs(got.Lat-tt.want.Lat) > 1e-9 {
			t.Errorf("%v.Normalized() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFromLngLatRejectsNonFinite(t *testing.T) {
	cases := []LngLat{
		{Lng: math.NaN(), Lat: 10},
		{Lng: 10, Lat: math.Inf(1)},
		{Lng: math.Inf(-1), Lat: math.NaN()},
	}
	for _, c := range cases {
		_, err := FromLngLat(c.Lng, c.Lat)
		if !errors.Is(err, ErrDecode) {
			t.Errorf("FromLngLat(%v, %v) error = %v, want ErrDecode", c.Lng, c.Lat, err)
		}
		if !c.IsMissing() {
			t.Errorf("%v should be missing", c)
		}
	}
}

func TestIsValid(t *testing.T) {
	valid, _ := FromToken("89c25c")
	tests := []struct {
		name string
		id   ID
		want bool
	}{
		{"level 9 cell", valid, true},
		{"zero", 0, false},
		{"missing marker", Missing, false},
		{"face 6", 0xc000000000000000 | 1, false},
		{"odd lowest bit", 0x89c25c0000000002, false},
		{"face cell", 0x1000000000000000, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.IsValid(); got != tt.want {
				t.Errorf("ID(%#x).IsValid() = %v, want %v", uint64(tt.id), got, tt.want)
			}
		})
	}
}

func TestInvalidCellAccessors(t *testing.T) {
	if _, err := ID(0).Level(); !errors.Is(err, ErrInvalidCell) {
		t.Errorf("Level() error = %v, want ErrInvalidCell", err)
	}
	if _, err := ID(0).Center(); !errors.Is(err, ErrInvalidCell) {
		t.Errorf("Center() error = %v, want ErrInvalidCell", err)
	}
	if _, err := Missing.Face(); !errors.Is(err, ErrInvalidCell) {
		t.Errorf("Face() error = %v, want ErrInvalidCell", err)
	}
}

func TestVector(t *testing.T) {
	v := Vector{1, Missing, 0x89c25c0000000000, Missing}
	if v.Class() != "s2_cell" {
		t.Errorf("Class() = %q", v.Class())
	}
	if v.Len() != 4 {
		t.Errorf("Len() = %d", v.Len())
	}
	if got := v.CountMissing(); got != 2 {
		t.Errorf("CountMissing() = %d, want 2", got)
	}
	if Missing.String() != "NA" {
		t.Errorf("Missing.String() = %q", Missing.String())
	}
}
