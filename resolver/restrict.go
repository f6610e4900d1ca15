// Package resolver turns provider asset descriptions into ordered,
// playable format lists.
package resolver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gense-cli/gense/source"
)

// ErrNoPlayable reports a resolution that produced no formats without
// any asset declaring a region lock: an unexplained empty result.
var ErrNoPlayable = errors.New("no playable source found")

// RestrictedError reports a program the provider refuses to serve
// outside its permitted regions. This is an expected condition, not a
// bug; callers should render it as such and may show the region list.
type RestrictedError struct {
	Countries []string
}

func (e *RestrictedError) Error() string {
	if len(e.Countries) == 0 {
		return "this program is not available in your region"
	}

	return fmt.Sprintf("this program is only available in %s", strings.Join(e.Countries, ", "))
}

// detect implements the restriction rule: only an empty format list
// combined with at least one region-locked asset signals
// geo-restriction. A non-empty list means playback is possible
// regardless of any lock flags.
func detect(formats []*source.Format, anyRestricted bool) bool {
	return len(formats) == 0 && anyRestricted
}
