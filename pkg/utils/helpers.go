package utils

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseDuration safely parses duration strings like "5m", defaulting when
// empty or malformed.
func ParseDuration(d string) time.Duration {
	if d == "" {
		return 5 * time.Minute
	}
	duration, err := time.ParseDuration(d)
	if err != nil {
		return 5 * time.Minute
	}
	return duration
}

// ParsePercent coerces a raw allocation field to a number. Missing or
// unparsable values count as zero, matching how the export encodes skipped
// allocation fields.
func ParsePercent(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// Round1 rounds to one decimal place, half away from zero.
func Round1(f float64) float64 {
	return math.Round(f*10) / 10
}
