// Package version provides unified mechanisms for application version tracking, update discovery, and compatibility validation.
package version

import (
	"fmt"
	"strings"
)

// Compare performs a semantic comparison between two version strings.
// Returns 1 if a > b, -1 if a < b, and 0 if equal.
func Compare(a, b string) (int, error) {
	av, err := parseVersion(a)
	if err != nil {
		return 0, err
	}

	bv, err := parseVersion(b)
	if err != nil {
		return 0, err
	}

	for i := range av {
		if av[i] == bv[i] {
			continue
		}
		if av[i] > bv[i] {
			return 1, nil
		}
		return -1, nil
	}

	return 0, nil
}

// parseVersion extracts major, minor and patch from a tag like v1.2.3.
// Anything trailing the patch number (pre-release suffixes) is ignored.
func parseVersion(s string) ([3]int, error) {
	var v [3]int
	_, err := fmt.Sscanf(strings.TrimPrefix(s, "v"), "%d.%d.%d", &v[0], &v[1], &v[2])
	return v, err
}
