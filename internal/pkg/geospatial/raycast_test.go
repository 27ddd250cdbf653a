package geospatial

import (
	"testing"

	"github.com/paulmach/orb"
)

func squareRing(t *testing.T) orb.Ring {
	t.Helper()
	rings, err := ParseDrawn(square)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return rings[0]
}

func TestPointInPolygon_Square(t *testing.T) {
	ring := squareRing(t)

	tests := []struct {
		name     string
		lat, lng float64
		want     bool
	}{
		{"center", 5, 5, true},
		{"far outside", 20, 20, false},
		{"bottom edge", 0, 5, true},
		{"left edge", 5, 0, true},
		{"top edge", 10, 5, false},
		{"just outside right", 5, 10.0001, false},
		{"negative", -1, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PointInPolygon(orb.Point{tt.lng, tt.lat}, ring)
			if got != tt.want {
				t.Errorf("PointInPolygon(lat %v, lng %v) = %v, want %v", tt.lat, tt.lng, got, tt.want)
			}
		})
	}
}

func TestPointInPolygon_Concave(t *testing.T) {
	// U shape opening north
	rings, err := ParseDrawn("0,0|0,3|3,3|3,2|1,2|1,1|3,1|3,0|0,0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if PointInPolygon(orb.Point{1.5, 2}, rings[0]) {
		t.Error("expected notch point to be outside")
	}
	if !PointInPolygon(orb.Point{0.5, 0.5}, rings[0]) {
		t.Error("expected arm point to be inside")
	}
}

func TestRegionContains_Union(t *testing.T) {
	rings, err := ParseDrawn("0,0|0,1|1,1|1,0|0,0:5,5|5,6|6,6|6,5|5,5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !RegionContains(orb.Point{0.5, 0.5}, rings) {
		t.Error("expected point in first ring")
	}
	if !RegionContains(orb.Point{5.5, 5.5}, rings) {
		t.Error("expected point in second ring")
	}
	if RegionContains(orb.Point{3, 3}, rings) {
		t.Error("expected point between rings to be outside")
	}
	if RegionContains(orb.Point{0.5, 0.5}, nil) {
		t.Error("expected empty region to contain nothing")
	}
}
