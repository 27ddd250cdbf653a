package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a loosely typed numeric request field. Clients send filter
// bounds as numbers, numeric strings, empty strings or null; only finite
// numeric values are considered set.
type Number struct {
	value float64
	set   bool
}

// NewNumber returns a Number holding v.
func NewNumber(v float64) Number {
	return Number{value: v, set: !math.IsNaN(v) && !math.IsInf(v, 0)}
}

// UnmarshalJSON accepts JSON numbers and numeric strings. Anything else
// (null, "", booleans, objects, non-numeric strings) leaves the Number unset.
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			*n = NewNumber(v)
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		if v, err := strconv.ParseFloat(string(data), 64); err == nil {
			*n = NewNumber(v)
		}
	}
	return nil
}

// MarshalJSON writes the value, or null when unset.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(n.value, 'f', -1, 64)), nil
}

// Float returns the value and whether it is set.
func (n Number) Float() (float64, bool) {
	return n.value, n.set
}

// Valid reports whether the field holds a finite number.
func (n Number) Valid() bool {
	return n.set
}

// IntOr returns the value truncated to an int, or def when unset. Values
// beyond the int32 range are clamped so page arithmetic cannot overflow.
func (n Number) IntOr(def int) int {
	if !n.set {
		return def
	}
	switch {
	case n.value > math.MaxInt32:
		return math.MaxInt32
	case n.value < math.MinInt32:
		return math.MinInt32
	}
	return int(n.value)
}
