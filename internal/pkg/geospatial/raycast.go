package geospatial

import "github.com/paulmach/orb"

// PointInPolygon reports whether pt lies inside ring using even-odd ray
// casting on raw lng/lat (x = lng, y = lat). Points on an edge or vertex get
// whatever the crossing count yields; for an axis-aligned square the bottom
// and left edges count as inside.
func PointInPolygon(pt orb.Point, ring orb.Ring) bool {
	inside := false
	x, y := pt[0], pt[1]

	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]

		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// RegionContains reports whether any ring contains pt. Rings are treated as
// independent shapes; there is no hole subtraction.
func RegionContains(pt orb.Point, rings []orb.Ring) bool {
	for _, ring := range rings {
		if PointInPolygon(pt, ring) {
			return true
		}
	}
	return false
}
