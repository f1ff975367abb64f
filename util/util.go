// Package util provides a collection of domain-agnostic utility functions.
package util

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Quantify returns a pluralized string representation of a count and its associated labels.
func Quantify(count int, singular, plural string) string {
	if count == 1 || count == -1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// Ignore executes a function and explicitly discards its error return value.
func Ignore(f func() error) {
	_ = f()
}

// Clamp narrows v into [lo, hi]. When lo > hi the result is lo.
func Clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Truncate converts a float to an int toward zero, the way pixel deltas become volume steps.
func Truncate(v float64) int {
	return int(math.Trunc(v))
}

// FormatSeconds renders a non-negative duration in seconds as m:ss or h:mm:ss.
func FormatSeconds(seconds float64) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	total := int(seconds)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%s%d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%s%d:%02d", sign, m, s)
}
