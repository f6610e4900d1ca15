// Package manifest expands segmented-stream manifests into concrete
// playable formats and answers reachability probes.
package manifest

import (
	"encoding/xml"
	"fmt"
	"net/url"

	"github.com/gense-cli/gense/source"
	"github.com/samber/mo"
)

// The F4M subset the expander reads.
type f4mManifest struct {
	XMLName xml.Name   `xml:"manifest"`
	Media   []f4mMedia `xml:"media"`
}

type f4mMedia struct {
	URL     string `xml:"url,attr"`
	Href    string `xml:"href,attr"`
	Bitrate int    `xml:"bitrate,attr"`
	Width   int    `xml:"width,attr"`
	Height  int    `xml:"height,attr"`
}

// expandHDS turns a legacy F4M manifest into one format per media
// rendition. The fragments are only addressable through the manifest,
// so every format keeps the manifest URL and differs by bitrate.
func expandHDS(data []byte, base *url.URL, id string, preference mo.Option[int]) ([]*source.Format, error) {
	var m f4mManifest
	if err := xml.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	var formats []*source.Format

	for i, media := range m.Media {
		if media.URL == "" && media.Href == "" {
			continue
		}

		name := fmt.Sprint(i)
		if media.Bitrate > 0 {
			name = fmt.Sprint(media.Bitrate)
		}

		formats = append(formats, &source.Format{
			URL:        base.String(),
			ID:         fmt.Sprintf("%s-%s", id, name),
			Ext:        "flv",
			Bitrate:    media.Bitrate,
			Width:      media.Width,
			Height:     media.Height,
			Preference: preference,
		})
	}

	return formats, nil
}
