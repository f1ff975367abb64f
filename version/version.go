// Package version parses and compares the dotted release numbers of touchctl and mpv.
package version

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/samber/lo"
)

// Version is a major.minor.patch triple. Pre-release and build suffixes are dropped.
type Version struct {
	Major, Minor, Patch int
}

var pattern = regexp.MustCompile(`v?(\d+)\.(\d+)(?:\.(\d+))?`)

// Parse finds the first version number in s, so "mpv v0.38.0-4-gabc" parses as 0.38.0.
// A missing patch component counts as zero.
func Parse(s string) (Version, error) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, fmt.Errorf("no version number in %q", s)
	}

	parts := lo.Map(m[1:], func(p string, _ int) int {
		if p == "" {
			return 0
		}
		n, _ := strconv.Atoi(p)
		return n
	})

	return Version{Major: parts[0], Minor: parts[1], Patch: parts[2]}, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Cmp returns 1 if v > o, -1 if v < o, and 0 if they are equal.
func (v Version) Cmp(o Version) int {
	for _, pair := range []lo.Tuple2[int, int]{
		{A: v.Major, B: o.Major},
		{A: v.Minor, B: o.Minor},
		{A: v.Patch, B: o.Patch},
	} {
		if pair.A > pair.B {
			return 1
		}

		if pair.A < pair.B {
			return -1
		}
	}

	return 0
}

// Compare parses both strings and compares them.
func Compare(a, b string) (int, error) {
	av, err := Parse(a)
	if err != nil {
		return 0, err
	}

	bv, err := Parse(b)
	if err != nil {
		return 0, err
	}

	return av.Cmp(bv), nil
}
