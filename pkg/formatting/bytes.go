// Package formatting converts byte sizes between counts and human-readable strings.
package formatting

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

var units = []string{"B", "KB", "MB", "GB", "TB"}

// FormatBytes renders n using base-1024 units, e.g. 1048576 -> "1 MB".
func FormatBytes(n int64) string {
	size := float64(n)
	unit := 0
	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}
	return strconv.FormatFloat(size, 'f', -1, 64) + " " + units[unit]
}

// ParseBytes parses a size such as "512", "64KB" or "1.5 MB" into bytes.
// Units are base-1024 and case-insensitive; a bare number is bytes.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size")
	}

	split := strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.'
	})
	number, unit := s, ""
	if split >= 0 {
		number, unit = s[:split], strings.TrimSpace(s[split:])
	}

	value, err := strconv.ParseFloat(number, 64)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	exp := 0
	if unit != "" {
		exp = slices.Index(units, strings.ToUpper(unit))
		if exp < 0 {
			return 0, fmt.Errorf("unknown byte size unit: %q", unit)
		}
	}

	for range exp {
		value *= 1024
	}
	return int64(value), nil
}
