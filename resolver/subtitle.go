// Package resolver turns provider asset descriptions into ordered,
// playable format lists.
package resolver

import (
	"strings"

	"github.com/gense-cli/gense/source"
)

// collect normalizes an asset's subtitle references into the
// language-keyed track map. References without a URL are skipped;
// references for the same resolved code accumulate in declaration
// order.
func (r *Resolver) collect(asset *source.Asset, into map[string][]*source.Subtitle) {
	for _, ref := range asset.Subtitles {
		if ref.URI == "" {
			continue
		}

		lang := ref.Language
		if lang == "" {
			lang = r.defaultLanguage
		}

		if code, ok := r.languages[lang]; ok {
			lang = code
		}

		into[lang] = append(into[lang], &source.Subtitle{
			Language: lang,
			URL:      ref.URI,
			Ext:      extensionFor(ref.MimeType),
		})
	}
}

// extensionFor maps a declared subtitle MIME type to a file
// extension, defaulting to vtt.
func extensionFor(mimeType string) string {
	switch strings.ToLower(strings.TrimSpace(mimeType)) {
	case "text/vtt", "text/webvtt":
		return "vtt"
	case "text/srt", "application/x-srt", "application/x-subrip":
		return "srt"
	case "application/ttml+xml", "application/ttaf+xml":
		return "ttml"
	default:
		return "vtt"
	}
}
