package geospatial

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// Delimiters of the client polygon encoding: "lat,lng|lat,lng|...:lat,lng|...".
const (
	RingSeparator       = ":"
	PointSeparator      = "|"
	CoordinateSeparator = ","
)

const minRingPoints = 4

var (
	ErrEmptyRing     = errors.New("empty ring")
	ErrTooFewPoints  = errors.New("ring has fewer than 4 points")
	ErrRingNotClosed = errors.New("ring is not closed")
	ErrBadCoordinate = errors.New("bad coordinate")
	ErrOutOfRange    = errors.New("coordinate out of range")
)

// ParseDrawn validates a client polygon string and returns one ring per
// ":"-separated part. Any failing ring rejects the whole input.
//
// Ring closure is checked on the raw point tokens, so "1.0,2.0" does not
// close a ring opened with "1,2" even though the values are equal.
func ParseDrawn(s string) ([]orb.Ring, error) {
	parts := strings.Split(s, RingSeparator)
	rings := make([]orb.Ring, 0, len(parts))

	for i, part := range parts {
		if strings.TrimSpace(part) == "" {
			return nil, fmt.Errorf("ring %d: %w", i, ErrEmptyRing)
		}

		tokens := strings.Split(part, PointSeparator)
		if len(tokens) < minRingPoints {
			return nil, fmt.Errorf("ring %d: %w", i, ErrTooFewPoints)
		}
		if tokens[0] != tokens[len(tokens)-1] {
			return nil, fmt.Errorf("ring %d: %w", i, ErrRingNotClosed)
		}

		ring := make(orb.Ring, 0, len(tokens))
		for _, tok := range tokens {
			p, err := parseLatLng(tok)
			if err != nil {
				return nil, fmt.Errorf("ring %d: %w", i, err)
			}
			ring = append(ring, p)
		}
		rings = append(rings, ring)
	}

	return rings, nil
}

// ValidateRings applies the drawn-polygon rules to rings that did not come
// from ParseDrawn, such as imported shapefile parts. Closure is checked on
// the coordinate values.
func ValidateRings(rings []orb.Ring) error {
	if len(rings) == 0 {
		return ErrEmptyRing
	}
	for i, ring := range rings {
		if len(ring) < minRingPoints {
			return fmt.Errorf("ring %d: %w", i, ErrTooFewPoints)
		}
		if !ring.Closed() {
			return fmt.Errorf("ring %d: %w", i, ErrRingNotClosed)
		}
		for _, p := range ring {
			if math.IsNaN(p[0]) || math.IsNaN(p[1]) || math.IsInf(p[0], 0) || math.IsInf(p[1], 0) {
				return fmt.Errorf("ring %d: %w", i, ErrBadCoordinate)
			}
			if p[1] < -90 || p[1] > 90 || p[0] < -180 || p[0] > 180 {
				return fmt.Errorf("ring %d: %w: %v", i, ErrOutOfRange, p)
			}
		}
	}
	return nil
}

// parseLatLng parses a "lat,lng" token into an orb point (lng, lat).
// parseLatLng reads the first two comma-separated fields of a token as lat
// and lng. Further fields are ignored.
func parseLatLng(tok string) (orb.Point, error) {
	fields := strings.Split(tok, CoordinateSeparator)
	if len(fields) < 2 {
		return orb.Point{}, fmt.Errorf("%w: %q", ErrBadCoordinate, tok)
	}

	lat, err := parseFinite(fields[0])
	if err != nil {
		return orb.Point{}, fmt.Errorf("%w: %q", ErrBadCoordinate, tok)
	}
	lng, err := parseFinite(fields[1])
	if err != nil {
		return orb.Point{}, fmt.Errorf("%w: %q", ErrBadCoordinate, tok)
	}

	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return orb.Point{}, fmt.Errorf("%w: %q", ErrOutOfRange, tok)
	}
	return orb.Point{lng, lat}, nil
}

var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// parseFinite accepts the loose numeric forms browsers send: blank means
// zero, unsigned 0x/0o/0b integers, and plain decimal literals. Underscores,
// hex floats and non-finite values are rejected.
func parseFinite(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			// ParseUint rejects underscores when the base is explicit.
			u, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return 0, ErrBadCoordinate
			}
			return float64(u), nil
		}
	}

	if !decimalLiteral.MatchString(s) {
		return 0, ErrBadCoordinate
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrBadCoordinate
	}
	return v, nil
}

// Canonicalize renders rings as canonical polygon text with lng before lat:
// "POLYGON ((lng lat, ...))" for one ring, "MULTIPOLYGON (((...)), ((...)))"
// for several.
func Canonicalize(rings []orb.Ring) string {
	parts := make([]string, len(rings))
	for i, ring := range rings {
		coords := make([]string, len(ring))
		for j, p := range ring {
			coords[j] = FormatCoordinate(p[0]) + " " + FormatCoordinate(p[1])
		}
		parts[i] = "((" + strings.Join(coords, ", ") + "))"
	}

	if len(parts) == 1 {
		return "POLYGON " + parts[0]
	}
	return "MULTIPOLYGON (" + strings.Join(parts, ", ") + ")"
}

// CanonicalizeDrawn validates a client polygon string and returns its
// canonical text.
func CanonicalizeDrawn(s string) (string, error) {
	rings, err := ParseDrawn(s)
	if err != nil {
		return "", err
	}
	return Canonicalize(rings), nil
}

// FormatCoordinate writes v in its shortest round-trip form, switching to
// exponent notation below 1e-6 ("1e-7", never "1e-07").
func FormatCoordinate(v float64) string {
	if v == 0 {
		return "0"
	}

	if a := math.Abs(v); a < 1e-6 || a >= 1e21 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		digits := strings.TrimLeft(exp[1:], "0")
		return mant + "e" + exp[:1] + digits
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
