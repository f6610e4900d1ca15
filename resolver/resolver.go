// Package resolver turns provider asset descriptions into ordered,
// playable format lists.
package resolver

import (
	"time"

	"github.com/gense-cli/gense/log"
	"github.com/gense-cli/gense/source"
	"github.com/samber/mo"
)

// Fetcher expands a segmented manifest URL into concrete formats.
// The id becomes the prefix of every produced format id, and the
// preference is applied to every produced format unchanged.
type Fetcher interface {
	Fetch(url string, transport source.Transport, id string, preference mo.Option[int]) ([]*source.Format, error)
}

// Prober verifies that a format URL actually answers. Unreachable
// formats are dropped silently from the final list.
type Prober interface {
	Alive(format *source.Format) bool
}

// Options configure a Resolver for one provider.
type Options struct {
	// Fetcher expands segmented manifests. Required.
	Fetcher Fetcher
	// Prober filters the non-HLS partition. Nil disables probing.
	Prober Prober
	// Languages maps provider language names to short codes.
	// Unknown names pass through unchanged.
	Languages map[string]string
	// DefaultLanguage labels subtitle references that declare none.
	DefaultLanguage string
	// Countries the provider is permitted to serve, reported on
	// restriction errors.
	Countries []string
	// Warn receives non-fatal per-link failures. Defaults to log.Warnf.
	Warn func(format string, args ...any)
}

// Resolver resolves asset lists for a single provider. The zero value
// is not usable; construct with New. A Resolver is stateless across
// calls: resolving two programs concurrently needs no locks.
type Resolver struct {
	fetcher         Fetcher
	prober          Prober
	languages       map[string]string
	defaultLanguage string
	countries       []string
	warn            func(format string, args ...any)
}

// New creates a Resolver from options.
func New(options Options) *Resolver {
	if options.Warn == nil {
		options.Warn = log.Warnf
	}

	if options.DefaultLanguage == "" {
		options.DefaultLanguage = "und"
	}

	return &Resolver{
		fetcher:         options.Fetcher,
		prober:          options.Prober,
		languages:       options.Languages,
		defaultLanguage: options.DefaultLanguage,
		countries:       options.Countries,
		warn:            options.Warn,
	}
}

// Resolve walks the asset list once and produces the normalized
// result. Image assets contribute the thumbnail (first one wins);
// video and audio assets contribute duration, restriction flags,
// stream links and subtitle references. Per-link failures are
// reported through the warn sink and skipped, never escalated.
//
// When no playable format survives, Resolve fails with a
// *RestrictedError if any asset was region-locked, and with
// ErrNoPlayable otherwise. Given identical assets and collaborator
// responses, the result is identical on every call.
func (r *Resolver) Resolve(assets []*source.Asset) (*source.Resolution, error) {
	res := &source.Resolution{
		Subtitles: make(map[string][]*source.Subtitle),
	}

	var (
		formats    []*source.Format
		restricted bool
	)

	for _, asset := range assets {
		switch asset.Kind {
		case source.KindImage:
			if res.Thumbnail == "" {
				res.Thumbnail = asset.URI
			}
		case source.KindVideo, source.KindAudio:
			if d := time.Duration(asset.DurationMs) * time.Millisecond; d > res.Duration {
				res.Duration = d
			}

			restricted = restricted || asset.Restricted

			for _, link := range asset.Links {
				formats = append(formats, r.dispatch(link, asset)...)
			}

			r.collect(asset, res.Subtitles)
		}
	}

	res.Formats = r.aggregate(formats)

	if len(res.Formats) == 0 {
		if detect(res.Formats, restricted) {
			return nil, &RestrictedError{Countries: r.countries}
		}

		return nil, ErrNoPlayable
	}

	return res, nil
}
