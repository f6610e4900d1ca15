// Package manifest expands segmented-stream manifests into concrete
// playable formats and answers reachability probes.
package manifest

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/gense-cli/gense/source"
	"github.com/grafov/m3u8"
	"github.com/samber/mo"
)

// expandHLS turns a master playlist into one format per variant plus
// one per distinct audio rendition. A media playlist is already a
// single rendition and maps to one format pointing back at itself.
func expandHLS(r io.Reader, base *url.URL, id string, preference mo.Option[int]) ([]*source.Format, error) {
	playlist, kind, err := m3u8.DecodeFrom(r, true)
	if err != nil {
		return nil, err
	}

	if kind == m3u8.MEDIA {
		return []*source.Format{{
			URL:        base.String(),
			ID:         id,
			Ext:        "mp4",
			Preference: preference,
		}}, nil
	}

	master, ok := playlist.(*m3u8.MasterPlaylist)
	if !ok {
		return nil, fmt.Errorf("unrecognized playlist type")
	}

	var (
		formats []*source.Format
		index   int
	)

	// The same audio group repeats on every variant that uses it.
	seenAudio := make(map[string]bool)

	for _, variant := range master.Variants {
		if variant == nil || variant.URI == "" {
			continue
		}

		f := &source.Format{
			URL:        resolveRef(base, variant.URI),
			ID:         fmt.Sprintf("%s-%d", id, index),
			Ext:        "mp4",
			FPS:        variant.FrameRate,
			Preference: preference,
		}
		index++

		if bw := variant.AverageBandwidth; bw > 0 {
			f.Bitrate = int(bw / 1000)
		} else if variant.Bandwidth > 0 {
			f.Bitrate = int(variant.Bandwidth / 1000)
		}

		if w, h, ok := splitResolution(variant.Resolution); ok {
			f.Width, f.Height = w, h
		}

		applyCodecs(f, variant.Codecs)
		formats = append(formats, f)

		for _, alt := range variant.Alternatives {
			if alt == nil || alt.Type != "AUDIO" || alt.URI == "" || seenAudio[alt.URI] {
				continue
			}
			seenAudio[alt.URI] = true

			formats = append(formats, &source.Format{
				URL:        resolveRef(base, alt.URI),
				ID:         fmt.Sprintf("%s-audio-%s", id, altName(alt)),
				Ext:        "mp4",
				VideoCodec: source.CodecNone,
				Language:   alt.Language,
				Preference: preference,
			})
		}
	}

	return formats, nil
}

func altName(alt *m3u8.Alternative) string {
	switch {
	case alt.Name != "":
		return alt.Name
	case alt.Language != "":
		return alt.Language
	default:
		return alt.GroupId
	}
}

// splitResolution parses a "1280x720" attribute.
func splitResolution(s string) (width, height int, ok bool) {
	w, h, found := strings.Cut(s, "x")
	if !found {
		return 0, 0, false
	}

	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return 0, 0, false
	}

	height, err = strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return 0, 0, false
	}

	return width, height, true
}

// applyCodecs splits a CODECS attribute into video and audio codec
// hints. Unknown entries are left alone rather than guessed.
func applyCodecs(f *source.Format, codecs string) {
	for _, c := range strings.Split(codecs, ",") {
		c = strings.TrimSpace(c)

		switch {
		case c == "":
		case hasAnyPrefix(c, "avc", "hvc", "hev", "vp0", "av01"):
			if f.VideoCodec == "" {
				f.VideoCodec = c
			}
		case hasAnyPrefix(c, "mp4a", "ac-3", "ec-3", "opus", "alac", "flac"):
			if f.AudioCodec == "" {
				f.AudioCodec = c
			}
		}
	}
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}

	return false
}
