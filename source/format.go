// Package source defines the domain models and interfaces for program discovery and stream resolution.
package source

import (
	"fmt"

	"github.com/samber/mo"
)

// CodecNone marks a stream that carries no track of the given type.
const CodecNone = "none"

// Format is one playable stream produced by resolution: a direct file
// or a single variant out of a segmented manifest.
type Format struct {
	// Direct URL to the stream or sub-manifest. Never empty.
	URL string `json:"url"`
	// Format identifier (e.g. "HLS-2", "Download-SignLanguage-750").
	// Not unique; collisions are tolerated.
	ID string `json:"id"`
	// Container/extension hint (e.g. "mp4").
	Ext string `json:"ext,omitempty"`
	// Bitrate in kbit/s, when known.
	Bitrate int `json:"bitrate,omitempty"`
	// Video dimensions, when the manifest declares them.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
	// Frames per second, when the manifest declares it.
	FPS float64 `json:"fps,omitempty"`
	// CodecNone marks an audio-only stream. Empty means unknown.
	VideoCodec string `json:"vcodec,omitempty"`
	AudioCodec string `json:"acodec,omitempty"`
	// Audio language of the rendition, when declared.
	Language string `json:"language,omitempty"`
	// Relative selection bias, independent of bitrate and resolution.
	Preference mo.Option[int] `json:"preference"`
}

// AudioOnly reports whether the format carries no video track.
func (f *Format) AudioOnly() bool {
	return f.VideoCodec == CodecNone
}

// Label returns a short quality label for format pickers.
func (f *Format) Label() string {
	switch {
	case f.Height > 0:
		return fmt.Sprintf("%dp", f.Height)
	case f.Bitrate > 0:
		return fmt.Sprintf("%dk", f.Bitrate)
	default:
		return f.ID
	}
}

// String returns the format id together with its quality label.
func (f *Format) String() string {
	if label := f.Label(); label != f.ID {
		return fmt.Sprintf("%s (%s)", f.ID, label)
	}
	return f.ID
}
