// Package resolver turns provider asset descriptions into ordered,
// playable format lists.
package resolver

import (
	"strconv"
	"strings"

	"github.com/gense-cli/gense/source"
	"github.com/samber/mo"
)

// Legacy HDS manifests only answer with the player fingerprint attached.
const hdsQuery = "?hdcore=3.3.0&plugin=aasp-3.3.0.99.43"

// dispatch expands one link into zero or more formats. It never
// fails: undecryptable tokens and manifest errors become a warning
// and an empty slice, so sibling links keep resolving.
func (r *Resolver) dispatch(link *source.Link, asset *source.Asset) []*source.Format {
	uri := link.URI
	if uri == "" {
		if link.EncryptedURI == "" {
			return nil
		}

		var err error
		if uri, err = DecryptURI(link.EncryptedURI); err != nil {
			r.warn("skipping %s link: %s", link.Transport, err)
			return nil
		}
	}

	id := string(link.Transport)
	preference := mo.None[int]()

	switch {
	case asset.Target.Alternate():
		preference = mo.Some(-1)
		id += "-" + string(asset.Target)
	case asset.Target == source.TargetDefault:
		preference = mo.Some(1)
	}

	switch {
	case link.Transport == source.TransportHDS:
		formats := r.fetch(uri+hdsQuery, source.TransportHDS, id, preference)
		if asset.Kind == source.KindAudio {
			// HDS manifests do not reliably mark audio-only streams.
			for _, f := range formats {
				f.VideoCodec = source.CodecNone
			}
		}

		return formats
	case link.Transport == source.TransportHLS:
		return r.fetch(uri, source.TransportHLS, id, preference)
	case strings.HasPrefix(string(link.Transport), string(source.TransportDASH)):
		return r.fetch(uri, source.TransportDASH, id, preference)
	default:
		if link.Bitrate > 0 {
			id += "-" + strconv.Itoa(link.Bitrate)
		}

		f := &source.Format{
			URL:        uri,
			ID:         id,
			Ext:        link.FileFormat,
			Bitrate:    link.Bitrate,
			Preference: preference,
		}

		if asset.Kind == source.KindAudio {
			f.VideoCodec = source.CodecNone
		}

		return []*source.Format{f}
	}
}

// fetch delegates manifest expansion and flattens failures into
// warnings.
func (r *Resolver) fetch(uri string, transport source.Transport, id string, preference mo.Option[int]) []*source.Format {
	formats, err := r.fetcher.Fetch(uri, transport, id, preference)
	if err != nil {
		r.warn("skipping %s manifest: %s", transport, err)
		return nil
	}

	return formats
}
