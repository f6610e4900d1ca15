// Package source defines the domain models and interfaces for program discovery and stream resolution.
package source

import (
	"sort"
	"time"

	"golang.org/x/exp/maps"
)

// Resolution is the terminal artifact of resolving one program's
// assets: the ordered playable formats plus everything that rides
// along with them. It is read once by the caller and has no further
// lifecycle.
type Resolution struct {
	// Formats in final selection order: verified non-HLS streams
	// first, HLS variants last.
	Formats []*Format `json:"formats"`
	// Subtitle tracks grouped by language code, declaration order kept
	// within each language.
	Subtitles map[string][]*Subtitle `json:"subtitles,omitempty"`
	// First image asset seen, when any.
	Thumbnail string `json:"thumbnail,omitempty"`
	// Longest duration declared across assets.
	Duration time.Duration `json:"duration,omitempty"`
}

// Best returns the most preferable format: highest preference wins,
// then bitrate, then vertical resolution. Ties keep the earliest
// aggregated format, so the transport ordering decides.
func (r *Resolution) Best() (*Format, bool) {
	if len(r.Formats) == 0 {
		return nil, false
	}

	best := r.Formats[0]
	for _, f := range r.Formats[1:] {
		if better(f, best) {
			best = f
		}
	}

	return best, true
}

// SubtitlesFor returns the subtitle tracks for the given language
// code. When the language has no tracks it falls back to the
// alphabetically first language that does.
func (r *Resolution) SubtitlesFor(language string) []*Subtitle {
	if len(r.Subtitles) == 0 {
		return nil
	}

	if tracks, ok := r.Subtitles[language]; ok {
		return tracks
	}

	languages := maps.Keys(r.Subtitles)
	sort.Strings(languages)
	return r.Subtitles[languages[0]]
}

func better(a, b *Format) bool {
	if pa, pb := a.Preference.OrElse(0), b.Preference.OrElse(0); pa != pb {
		return pa > pb
	}
	if a.Bitrate != b.Bitrate {
		return a.Bitrate > b.Bitrate
	}
	return a.Height > b.Height
}
