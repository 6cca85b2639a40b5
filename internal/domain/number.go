package domain

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var leadingFloatRegex = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseFloat reads the leading number of v the way storefront scripts do:
// a comma is accepted as the decimal separator and trailing text is ignored,
// so "12,5 mm" parses as 12.5. ok is false when v has no leading number.
func ParseFloat(v string) (float64, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))

	match := leadingFloatRegex.FindString(s)
	if match == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return f, true
}
