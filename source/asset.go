// Package source defines the domain models and interfaces for program discovery and stream resolution.
package source

// Kind classifies an asset's payload.
type Kind string

const (
	KindImage Kind = "Image"
	KindVideo Kind = "VideoResource"
	KindAudio Kind = "AudioResource"
)

// Target names the audience an asset rendition is produced for.
// Providers use free-form values; only the ones below carry special
// dispatch semantics.
type Target string

const (
	TargetDefault             Target = "Default"
	TargetSpokenSubtitles     Target = "SpokenSubtitles"
	TargetSignLanguage        Target = "SignLanguage"
	TargetVisuallyInterpreted Target = "VisuallyInterpreted"
)

// Alternate reports whether the target is an alternate-audience
// rendition. Alternate renditions are deprioritized and carry their
// target name in the format id.
func (t Target) Alternate() bool {
	switch t {
	case TargetSpokenSubtitles, TargetSignLanguage, TargetVisuallyInterpreted:
		return true
	}
	return false
}

// Transport is the streaming technology a link is delivered over.
// Values mirror the provider's own link targets; anything that is not
// a recognized segmented transport plays as a direct file.
type Transport string

const (
	TransportHLS    Transport = "HLS"
	TransportDASH   Transport = "DASH"
	TransportHDS    Transport = "HDS"
	TransportDirect Transport = "Direct"
)

// Asset is one provider-declared media resource together with its
// stream links and subtitle references. Assets are immutable once
// parsed from the provider response.
type Asset struct {
	Kind Kind `json:"kind"`
	// Audience this rendition targets.
	Target Target `json:"target,omitempty"`
	// Region lock declared by the provider.
	Restricted bool `json:"restricted,omitempty"`
	// Declared duration in milliseconds.
	DurationMs int64 `json:"durationMs,omitempty"`
	// Image URI. Set for Image assets only.
	URI string `json:"uri,omitempty"`

	Links     []*Link        `json:"links,omitempty"`
	Subtitles []*SubtitleRef `json:"subtitles,omitempty"`
}

// Link is one concrete stream reference within an asset. Exactly one
// of URI and EncryptedURI is expected to be set; a link with neither
// is skipped.
type Link struct {
	// Plain stream URI.
	URI string `json:"uri,omitempty"`
	// Obfuscated stream token, resolved by resolver.DecryptURI.
	EncryptedURI string `json:"encryptedUri,omitempty"`
	// Delivery technology of the stream.
	Transport Transport `json:"transport"`
	// Declared bitrate in kbit/s.
	Bitrate int `json:"bitrate,omitempty"`
	// Container hint for direct links (e.g. "mp4").
	FileFormat string `json:"fileFormat,omitempty"`
}

// SubtitleRef is a provider-declared subtitle track reference, still
// carrying the provider's own language naming.
type SubtitleRef struct {
	// Language name as the provider declares it (e.g. "Danish").
	Language string `json:"language,omitempty"`
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
}
