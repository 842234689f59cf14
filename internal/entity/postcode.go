package entity

import (
	"regexp"
	"strings"
)

// outwardPattern validates the outward half of a UK postcode, e.g. "M1",
// "BL1", "SW1A".
var outwardPattern = regexp.MustCompile(`^[A-Z]{1,2}\d{1,2}[A-Z]?$`)

// NormalizePostcode strips all whitespace and uppercases, so "m1 1aa" and
// "M11AA" compare equal.
func NormalizePostcode(raw string) string {
	return strings.ToUpper(strings.Join(strings.Fields(raw), ""))
}

// OutwardCode extracts the outward code from a raw postcode: "m1 1aa" and
// "M11AA" both yield "M1". The inward half of a full postcode is always a
// digit plus two letters, so it is cut off by length rather than by
// pattern (a greedy prefix match would eat the inward's digit in dense
// codes like M11AA). Bare outward codes pass through as-is. Returns
// ErrInvalidPostcode when what remains does not look like a UK outward
// code.
func OutwardCode(raw string) (string, error) {
	normalized := NormalizePostcode(raw)

	outward := normalized
	if len(normalized) >= 5 {
		outward = normalized[:len(normalized)-3]
	}
	if !outwardPattern.MatchString(outward) {
		return "", ErrInvalidPostcode
	}
	return outward, nil
}
