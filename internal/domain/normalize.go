package domain

import (
	"math"
	"strconv"
	"strings"
)

// ToNumber converts a raw cell value to a float64. It is a total function:
// empty strings and the "NA" sentinel (any case) are 0, anything that fails
// standard decimal parsing is 0, and NaN or infinite results are 0. It never
// returns an error and never propagates NaN into a running total.
func ToNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "NA") {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// NormalizeCounty canonicalizes a county code for membership testing:
// trimmed and upper-cased, so " elk " and "ELK" compare equal.
func NormalizeCounty(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
