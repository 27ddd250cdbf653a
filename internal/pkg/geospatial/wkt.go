package geospatial

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// ErrMalformedWKT is returned when stored polygon text cannot be read back.
var ErrMalformedWKT = errors.New("malformed polygon text")

// ParseCanonical reads single-ring "POLYGON ((lng lat, ...))" text back into
// a ring. It strips the literal wrapper and splits on commas; multi-ring
// text is not expanded by this path, use ParseRegion for that.
func ParseCanonical(text string) (orb.Ring, error) {
	body := strings.Replace(text, "POLYGON ((", "", 1)
	body = strings.Replace(body, "))", "", 1)

	coords := strings.Split(body, ",")
	ring := make(orb.Ring, 0, len(coords))
	for _, c := range coords {
		fields := strings.Fields(c)
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: point %q", ErrMalformedWKT, c)
		}
		lng, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: lng %q", ErrMalformedWKT, fields[0])
		}
		lat, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: lat %q", ErrMalformedWKT, fields[1])
		}
		ring = append(ring, orb.Point{lng, lat})
	}

	return ring, nil
}

// ParseRegion reads stored polygon text into the rings used for
// containment tests. MULTIPOLYGON members contribute their outer ring only.
func ParseRegion(text string) ([]orb.Ring, error) {
	t := strings.TrimSpace(text)

	switch {
	case strings.HasPrefix(t, "MULTIPOLYGON"):
		mp, err := wkt.UnmarshalMultiPolygon(t)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedWKT, err)
		}
		rings := make([]orb.Ring, 0, len(mp))
		for _, poly := range mp {
			if len(poly) > 0 {
				rings = append(rings, poly[0])
			}
		}
		if len(rings) == 0 {
			return nil, fmt.Errorf("%w: empty multipolygon", ErrMalformedWKT)
		}
		return rings, nil

	case strings.HasPrefix(t, "POLYGON"):
		ring, err := ParseCanonical(t)
		if err != nil {
			return nil, err
		}
		return []orb.Ring{ring}, nil
	}

	return nil, fmt.Errorf("%w: unknown geometry", ErrMalformedWKT)
}
