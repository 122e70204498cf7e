// Package sizeutil formats byte counts for the bar prefixes.
package sizeutil

import (
	"fmt"
	"strings"
)

var units = []string{"K", "M", "G", "T", "P", "E", "Z"}

// Humanize renders a byte count with a binary unit and a mantissa of at
// most four characters: "0B", "1023B", "1.00KB", "10.0KB", "100KB",
// "941MB".
func Humanize(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%dB", n)
	}
	v := float64(n)
	for _, u := range units {
		v /= 1024.0
		if v < 1024.0 {
			return bestWidth(v) + u + "B"
		}
	}
	return fmt.Sprintf("%.1fYB", v)
}

// bestWidth formats v into at most four characters, trimming a trailing
// decimal point left over from the cut.
func bestWidth(v float64) string {
	const limit = 4
	s := fmt.Sprintf("%4.2f", v)
	if len(s) > limit {
		s = s[:limit]
	}
	s = strings.TrimSuffix(s, ".")
	return s
}
