package geospatial

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
)

func TestParseCanonical(t *testing.T) {
	ring, err := ParseCanonical("POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0))")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ring) != 5 {
		t.Fatalf("expected 5 points, got %d", len(ring))
	}
	if ring[2] != (orb.Point{10, 10}) {
		t.Errorf("expected (10 10), got %v", ring[2])
	}
}

func TestParseCanonical_Malformed(t *testing.T) {
	for _, text := range []string{"", "POLYGON ((0 0, 10))", "POLYGON ((a b, 1 1))"} {
		if _, err := ParseCanonical(text); !errors.Is(err, ErrMalformedWKT) {
			t.Errorf("ParseCanonical(%q): expected ErrMalformedWKT, got %v", text, err)
		}
	}
}

func TestParseRegion_MultiPolygon(t *testing.T) {
	rings, err := ParseRegion("MULTIPOLYGON (((0 0, 1 0, 1 1, 0 0)), ((5 5, 6 5, 6 6, 5 5)))")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rings) != 2 {
		t.Fatalf("expected 2 rings, got %d", len(rings))
	}
	if rings[1][0] != (orb.Point{5, 5}) {
		t.Errorf("expected second ring to start at (5 5), got %v", rings[1][0])
	}
}

func TestParseRegion_Polygon(t *testing.T) {
	rings, err := ParseRegion("POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0))")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rings) != 1 || len(rings[0]) != 5 {
		t.Fatalf("expected 1 ring of 5 points, got %v", rings)
	}
}

func TestParseRegion_UnknownGeometry(t *testing.T) {
	if _, err := ParseRegion("LINESTRING (0 0, 1 1)"); !errors.Is(err, ErrMalformedWKT) {
		t.Errorf("expected ErrMalformedWKT, got %v", err)
	}
}
