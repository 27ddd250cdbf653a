// Package shapefile reads polygon layers (ESRI .shp + .dbf) as regions that
// can be stored alongside drawn polygons.
package shapefile

import (
	"fmt"
	"strings"

	shp "github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
)

// Region is one polygon feature of a layer. Each shapefile part becomes a
// ring; points keep the file's x = lng, y = lat order.
type Region struct {
	Index int
	Name  string
	Rings []orb.Ring
	Attrs map[string]string
}

// ReadRegions loads every polygon feature from path. nameField selects the
// attribute used as the region name; when empty or absent the feature
// index is used. Non-polygon shapes are skipped.
func ReadRegions(path, nameField string) ([]Region, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer r.Close()

	fields := r.Fields()

	var regions []Region
	for r.Next() {
		idx, shape := r.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok {
			continue
		}

		attrs := make(map[string]string, len(fields))
		for i, f := range fields {
			attrs[f.String()] = strings.Trim(r.ReadAttribute(idx, i), " \x00")
		}

		name := attrs[nameField]
		if name == "" {
			name = fmt.Sprintf("feature-%d", idx)
		}

		regions = append(regions, Region{
			Index: idx,
			Name:  name,
			Rings: rings(poly),
			Attrs: attrs,
		})
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return regions, nil
}

// rings splits the flat point slice of a polygon into its parts.
func rings(poly *shp.Polygon) []orb.Ring {
	numParts := len(poly.Parts)
	out := make([]orb.Ring, 0, numParts)

	for partIdx := 0; partIdx < numParts; partIdx++ {
		start := poly.Parts[partIdx]
		end := int32(len(poly.Points))
		if partIdx+1 < numParts {
			end = poly.Parts[partIdx+1]
		}

		ring := make(orb.Ring, 0, end-start)
		for i := start; i < end; i++ {
			pt := poly.Points[i]
			ring = append(ring, orb.Point{pt.X, pt.Y})
		}
		out = append(out, ring)
	}
	return out
}
