// Package version compares dotted numeric release versions.
package version

import (
	"strconv"
	"strings"

	"github.com/ytget/yt-dl/internal/apperr"
)

// Version is a parsed dotted numeric version, most significant component first.
type Version []int

// Parse splits s on "." and parses every component as a non-negative integer.
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, apperr.New(apperr.InvalidVersionFormat, "parse version", "empty version string")
	}

	parts := strings.Split(s, ".")
	v := make(Version, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || strings.HasPrefix(p, "+") {
			return nil, apperr.New(apperr.InvalidVersionFormat, "parse version",
				"invalid version component "+strconv.Quote(p)+" in "+strconv.Quote(s))
		}
		v = append(v, n)
	}
	return v, nil
}

// Compare returns -1, 0 or 1. Missing trailing components count as zero.
func (v Version) Compare(other Version) int {
	n := max(len(v), len(other))
	for i := 0; i < n; i++ {
		a, b := v.at(i), other.at(i)
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
	}
	return 0
}

func (v Version) at(i int) int {
	if i < len(v) {
		return v[i]
	}
	return 0
}

// String joins the components with dots.
func (v Version) String() string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// Compare parses a and b and compares them.
func Compare(a, b string) (int, error) {
	va, err := Parse(a)
	if err != nil {
		return 0, err
	}
	vb, err := Parse(b)
	if err != nil {
		return 0, err
	}
	return va.Compare(vb), nil
}

// IsNewer reports whether remote is strictly greater than local.
func IsNewer(remote, local string) (bool, error) {
	c, err := Compare(remote, local)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
