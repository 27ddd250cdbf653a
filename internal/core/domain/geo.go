package domain

import (
	"math"

	"github.com/paulmach/orb"
)

// Location is a WGS 84 coordinate as it appears in the listing dataset.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Point converts the location to an orb point (x = lng, y = lat).
func (l Location) Point() orb.Point {
	return orb.Point{l.Lng, l.Lat}
}

// MapBounds is the visible map viewport sent by the client. The edges may
// arrive swapped; Bound normalizes them.
type MapBounds struct {
	West  Number `json:"west"`
	East  Number `json:"east"`
	South Number `json:"south"`
	North Number `json:"north"`
}

// Bound returns the normalized rectangle. ok is false when any edge is not a
// finite number, in which case no location can fall inside.
func (b MapBounds) Bound() (bound orb.Bound, ok bool) {
	w, okW := b.West.Float()
	e, okE := b.East.Float()
	s, okS := b.South.Float()
	n, okN := b.North.Float()
	if !okW || !okE || !okS || !okN {
		return orb.Bound{}, false
	}

	return orb.Bound{
		Min: orb.Point{math.Min(w, e), math.Min(s, n)},
		Max: orb.Point{math.Max(w, e), math.Max(s, n)},
	}, true
}
