package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Points is a fixed-point score with two decimal places, stored in
// hundredths so sums of weights are exact.
type Points int64

// PointsScale is the number of Points in one whole point.
const PointsScale = 100

// maxWholeDigits keeps parsed values well clear of int64 overflow when
// ten weights are summed.
const maxWholeDigits = 12

// Whole returns n whole points.
func Whole(n int64) Points {
	return Points(n * PointsScale)
}

// ParsePoints parses a non-negative decimal such as "30", "12.5" or "7.25".
func ParsePoints(s string) (Points, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty number")
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if !allDigits(whole) || (hasFrac && !allDigits(frac)) {
		return 0, fmt.Errorf("%q is not a non-negative decimal number", s)
	}
	if len(whole) > maxWholeDigits {
		return 0, fmt.Errorf("%q is too large", s)
	}
	frac = strings.TrimRight(frac, "0")
	if len(frac) > 2 {
		return 0, fmt.Errorf("%q has more than two decimal places", s)
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", s, err)
	}
	var f int64
	if frac != "" {
		f, _ = strconv.ParseInt((frac + "00")[:2], 10, 64)
	}
	return Points(w*PointsScale + f), nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// String renders p without trailing zeros: 300, 12.5, 7.25.
func (p Points) String() string {
	sign := ""
	if p < 0 {
		sign = "-"
		p = -p
	}
	whole, frac := int64(p)/PointsScale, int64(p)%PointsScale
	if frac == 0 {
		return fmt.Sprintf("%s%d", sign, whole)
	}
	return strings.TrimRight(fmt.Sprintf("%s%d.%02d", sign, whole, frac), "0")
}

// MarshalJSON emits p as a JSON number.
func (p Points) MarshalJSON() ([]byte, error) {
	return []byte(p.String()), nil
}
