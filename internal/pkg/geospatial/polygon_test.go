package geospatial

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
)

const square = "0,0|0,10|10,10|10,0|0,0"

func TestParseDrawn_Square(t *testing.T) {
	rings, err := ParseDrawn(square)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rings) != 1 {
		t.Fatalf("expected 1 ring, got %d", len(rings))
	}
	if len(rings[0]) != 5 {
		t.Fatalf("expected 5 points, got %d", len(rings[0]))
	}
	// lat,lng in, lng,lat out
	if got := rings[0][1]; got != (orb.Point{10, 0}) {
		t.Errorf("expected point (10 0), got %v", got)
	}
}

func TestParseDrawn_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrEmptyRing},
		{"blank ring", square + ":   ", ErrEmptyRing},
		{"three points", "0,0|0,10|0,0", ErrTooFewPoints},
		{"open ring", "0,0|0,10|10,10|10,0|0,1", ErrRingNotClosed},
		{"closure by value only", "1.0,2.0|1,3|2,3|1,2", ErrRingNotClosed},
		{"lat out of range", "0,0|91,10|10,10|0,0", ErrOutOfRange},
		{"lng out of range", "0,0|0,181|10,10|0,0", ErrOutOfRange},
		{"not a number", "0,0|abc,10|10,10|0,0", ErrBadCoordinate},
		{"missing lng", "0,0|5|10,10|0,0", ErrBadCoordinate},
		{"infinite", "0,0|Inf,5|10,10|0,0", ErrBadCoordinate},
		{"infinity word", "0,0|Infinity,5|10,10|0,0", ErrBadCoordinate},
		{"nan", "0,0|NaN,5|10,10|0,0", ErrBadCoordinate},
		{"hex float", "0,0|0x1p-2,5|10,10|0,0", ErrBadCoordinate},
		{"underscore digits", "0,0|1_0,5|10,10|0,0", ErrBadCoordinate},
		{"signed hex", "0,0|-0x10,5|10,10|0,0", ErrBadCoordinate},
		{"exponent overflow", "0,0|1e400,5|10,10|0,0", ErrBadCoordinate},
		{"second ring bad", square + ":0,0|1,1|0,0", ErrTooFewPoints},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDrawn(tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParseDrawn_LooseCoordinates(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  orb.Point
	}{
		{"extra fields ignored", "0,0|5,6,7|10,10|0,0", orb.Point{6, 5}},
		{"blank fields are zero", "0,0|,|10,10|0,0", orb.Point{0, 0}},
		{"blank lng is zero", "0,0|5, |10,10|0,0", orb.Point{0, 5}},
		{"hex integer", "0,0|0x10,5|10,10|0,0", orb.Point{5, 16}},
		{"octal and binary", "0,0|0o7,0b11|10,10|0,0", orb.Point{3, 7}},
		{"leading dot and exponent", "0,0|.5,1e1|10,10|0,0", orb.Point{10, 0.5}},
		{"explicit plus", "0,0|+5,-6|10,10|0,0", orb.Point{-6, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rings, err := ParseDrawn(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := rings[0][1]; got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseDrawn_TrimsTokens(t *testing.T) {
	rings, err := ParseDrawn(" 1, 2|3 ,4|5,6| 1, 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rings[0][0] != (orb.Point{2, 1}) {
		t.Errorf("expected (2 1), got %v", rings[0][0])
	}
}

func TestCanonicalize_SingleRing(t *testing.T) {
	got, err := CanonicalizeDrawn("1.0,2.0|3,4|5,6|1.0,2.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "POLYGON ((2 1, 4 3, 6 5, 2 1))"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCanonicalize_MultiRing(t *testing.T) {
	got, err := CanonicalizeDrawn("0,0|0,1|1,1|0,0:5,5|5,6|6,6|5,5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "MULTIPOLYGON (((0 0, 1 0, 1 1, 0 0)), ((5 5, 6 5, 6 6, 5 5)))"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFormatCoordinate(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{-122.4194, "-122.4194"},
		{37.7749, "37.7749"},
		{0.000001, "0.000001"},
		{0.0000001, "1e-7"},
		{-0.00000015, "-1.5e-7"},
	}
	for _, tt := range tests {
		if got := FormatCoordinate(tt.in); got != tt.want {
			t.Errorf("FormatCoordinate(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanonicalRoundTrip(t *testing.T) {
	in := "37.7749,-122.4194|37.8,-122.4194|37.8,-122.39|37.7749,-122.39|37.7749,-122.4194"
	drawn, err := ParseDrawn(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ring, err := ParseCanonical(Canonicalize(drawn))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ring.Equal(drawn[0]) {
		t.Errorf("round trip mismatch: %v vs %v", ring, drawn[0])
	}
}

func TestValidateRings(t *testing.T) {
	closed := orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 0}}

	tests := []struct {
		name  string
		rings []orb.Ring
		want  error
	}{
		{"ok", []orb.Ring{closed}, nil},
		{"none", nil, ErrEmptyRing},
		{"short", []orb.Ring{{{0, 0}, {1, 1}, {0, 0}}}, ErrTooFewPoints},
		{"open", []orb.Ring{{{0, 0}, {10, 0}, {10, 10}, {0, 10}}}, ErrRingNotClosed},
		{"latitude", []orb.Ring{{{0, 0}, {10, 95}, {10, 10}, {0, 0}}}, ErrOutOfRange},
		{"second ring bad", []orb.Ring{closed, {{0, 0}, {1, 1}}}, ErrTooFewPoints},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRings(tt.rings)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
