// Package manifest expands segmented-stream manifests into concrete
// playable formats and answers reachability probes.
package manifest

import (
	"net/http"

	"github.com/gense-cli/gense/log"
	"github.com/gense-cli/gense/network"
	"github.com/gense-cli/gense/source"
)

// Probe answers the resolver's reachability checks with a lightweight
// HEAD request, falling back to a one-byte ranged GET for servers
// that reject HEAD. It satisfies the resolver's Prober interface.
type Probe struct {
	http *http.Client
}

// NewProbe creates a probe on the shared HTTP client.
func NewProbe() *Probe {
	return &Probe{http: network.Client}
}

// Alive reports whether the format's URL answers. Failures are logged
// at debug level only; the caller drops dead formats silently.
func (p *Probe) Alive(f *source.Format) bool {
	if p.request(http.MethodHead, f.URL, "") {
		return true
	}

	if p.request(http.MethodGet, f.URL, "bytes=0-0") {
		return true
	}

	log.Debugf("dropping unreachable format %s (%s)", f.ID, f.URL)

	return false
}

func (p *Probe) request(method, url, byteRange string) bool {
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return false
	}

	if byteRange != "" {
		req.Header.Set("Range", byteRange)
	}

	res, err := p.http.Do(req)
	if err != nil {
		return false
	}
	defer res.Body.Close()

	return res.StatusCode < http.StatusBadRequest
}
