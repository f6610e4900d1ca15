// Package manifest expands segmented-stream manifests into concrete
// playable formats and answers reachability probes.
package manifest

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"

	"github.com/PaesslerAG/gval"
	"github.com/gense-cli/gense/log"
	"github.com/gense-cli/gense/source"
	"github.com/rickb777/date/period"
	"github.com/samber/mo"
)

// The MPD subset the expander reads. Everything else in the document
// is ignored by the XML decoder.
type mpdManifest struct {
	XMLName                   xml.Name    `xml:"MPD"`
	Type                      string      `xml:"type,attr"`
	MediaPresentationDuration string      `xml:"mediaPresentationDuration,attr"`
	BaseURL                   string      `xml:"BaseURL"`
	Periods                   []mpdPeriod `xml:"Period"`
}

type mpdPeriod struct {
	ID             string             `xml:"id,attr"`
	Duration       string             `xml:"duration,attr"`
	BaseURL        string             `xml:"BaseURL"`
	AdaptationSets []mpdAdaptationSet `xml:"AdaptationSet"`
}

type mpdAdaptationSet struct {
	ContentType     string              `xml:"contentType,attr"`
	MimeType        string              `xml:"mimeType,attr"`
	FrameRate       string              `xml:"frameRate,attr"`
	Lang            string              `xml:"lang,attr"`
	Codecs          string              `xml:"codecs,attr"`
	BaseURL         string              `xml:"BaseURL"`
	Representations []mpdRepresentation `xml:"Representation"`
}

type mpdRepresentation struct {
	ID        string `xml:"id,attr"`
	Bandwidth int    `xml:"bandwidth,attr"`
	Width     int    `xml:"width,attr"`
	Height    int    `xml:"height,attr"`
	FrameRate string `xml:"frameRate,attr"`
	Codecs    string `xml:"codecs,attr"`
	MimeType  string `xml:"mimeType,attr"`
	BaseURL   string `xml:"BaseURL"`
}

// expandDASH turns an MPD into one format per representation across
// all non-empty periods. A representation with its own BaseURL chain
// gets that file URL; otherwise the format points back at the
// manifest and rendition choice is left to the player.
func expandDASH(data []byte, base *url.URL, id string, preference mo.Option[int]) ([]*source.Format, error) {
	var m mpdManifest
	if err := xml.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	var (
		formats []*source.Format
		index   int
	)

	// Representation ids repeat across periods of the same stream.
	seen := make(map[string]bool)

	for _, p := range m.Periods {
		if d, ok := parsePeriod(p.Duration); ok && d.IsZero() {
			// Zero-length periods are ad-break placeholders.
			continue
		}

		for _, set := range p.AdaptationSets {
			for _, rep := range set.Representations {
				if rep.ID != "" {
					if seen[rep.ID] {
						continue
					}
					seen[rep.ID] = true
				}

				name := rep.ID
				if name == "" {
					name = fmt.Sprint(index)
				}
				index++

				f := &source.Format{
					URL:        chainBaseURL(base, m.BaseURL, p.BaseURL, set.BaseURL, rep.BaseURL),
					ID:         fmt.Sprintf("%s-%s", id, name),
					Ext:        "mp4",
					Bitrate:    rep.Bandwidth / 1000,
					Width:      rep.Width,
					Height:     rep.Height,
					FPS:        frameRate(rep.FrameRate, set.FrameRate),
					Language:   set.Lang,
					Preference: preference,
				}

				if audioSet(set, rep) {
					f.VideoCodec = source.CodecNone
					f.AudioCodec = firstNonEmpty(rep.Codecs, set.Codecs)
				} else {
					applyCodecs(f, firstNonEmpty(rep.Codecs, set.Codecs))
				}

				formats = append(formats, f)
			}
		}
	}

	if total, ok := parsePeriod(m.MediaPresentationDuration); ok {
		d, _ := total.Duration()
		log.Debugf("dash manifest declares %s of media", d)
	}

	return formats, nil
}

// chainBaseURL applies the MPD BaseURL resolution chain on top of the
// manifest URL. With no BaseURL anywhere the manifest URL itself
// comes back.
func chainBaseURL(base *url.URL, refs ...string) string {
	u := base
	for _, ref := range refs {
		if ref != "" {
			u = resolveURL(u, ref)
		}
	}

	return u.String()
}

func audioSet(set mpdAdaptationSet, rep mpdRepresentation) bool {
	if set.ContentType == "audio" {
		return true
	}

	mime := firstNonEmpty(rep.MimeType, set.MimeType)

	return strings.HasPrefix(mime, "audio/")
}

// parsePeriod reads an ISO-8601 duration attribute (e.g. "PT30M").
func parsePeriod(s string) (period.Period, bool) {
	if s == "" {
		return period.Period{}, false
	}

	p, err := period.Parse(s)
	if err != nil {
		return period.Period{}, false
	}

	return p, true
}

// frameRate evaluates the first non-empty frame rate attribute, which
// may be a plain number or a fraction like "30000/1001".
func frameRate(rates ...string) float64 {
	for _, rate := range rates {
		if rate == "" {
			continue
		}

		value, err := gval.Evaluate(rate, nil)
		if err != nil {
			continue
		}

		switch v := value.(type) {
		case float64:
			return v
		case int:
			return float64(v)
		}
	}

	return 0
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
