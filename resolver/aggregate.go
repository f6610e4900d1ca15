// Package resolver turns provider asset descriptions into ordered,
// playable format lists.
package resolver

import (
	"strings"

	"github.com/gense-cli/gense/source"
	"github.com/samber/lo"
)

// hlsPrefix marks formats expanded out of an HLS master playlist.
const hlsPrefix = "HLS-"

// aggregate applies the final ordering: every non-HLS format,
// filtered through the reachability prober, then every HLS variant
// untouched. HLS sub-playlists are trusted without a probe and go
// last, so an equal-quality verified alternative wins downstream
// selection.
//
// The split is a stable partition over two buffers, not a sort:
// relative order inside each half always matches dispatch order.
func (r *Resolver) aggregate(formats []*source.Format) []*source.Format {
	var head, tail []*source.Format

	for _, f := range formats {
		if strings.HasPrefix(f.ID, hlsPrefix) {
			tail = append(tail, f)
		} else {
			head = append(head, f)
		}
	}

	if r.prober != nil {
		head = lo.Filter(head, func(f *source.Format, _ int) bool {
			return r.prober.Alive(f)
		})
	}

	return append(head, tail...)
}
