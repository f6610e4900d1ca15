// Package manifest expands segmented-stream manifests into concrete
// playable formats and answers reachability probes.
package manifest

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/gense-cli/gense/key"
	"github.com/gense-cli/gense/log"
	"github.com/gense-cli/gense/network"
	"github.com/gense-cli/gense/source"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// FetchError reports a manifest that could not be downloaded or
// parsed. The resolver recovers it as a per-link skip.
type FetchError struct {
	URL       string
	Transport source.Transport
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s manifest %s: %s", e.Transport, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client downloads manifests through the shared HTTP client and
// expands them per transport. It satisfies the resolver's Fetcher
// interface.
type Client struct {
	http *http.Client
}

// NewClient creates a manifest client on the shared HTTP client. A
// configured timeout applies per download, so one stalling CDN costs a
// skipped link rather than a hung resolution.
func NewClient() *Client {
	httpClient := network.Client

	if timeout := viper.GetDuration(key.ResolverTimeout); timeout > 0 {
		clone := *network.Client
		clone.Timeout = timeout
		httpClient = &clone
	}

	return &Client{http: httpClient}
}

// Fetch downloads the manifest at rawURL and expands it according to
// the declared transport. The id seeds every produced format id and
// the preference is copied onto every produced format unchanged.
func (c *Client) Fetch(rawURL string, transport source.Transport, id string, preference mo.Option[int]) ([]*source.Format, error) {
	fail := func(err error) ([]*source.Format, error) {
		return nil, &FetchError{URL: rawURL, Transport: transport, Err: err}
	}

	base, err := url.Parse(rawURL)
	if err != nil {
		return fail(err)
	}

	res, err := c.http.Get(rawURL)
	if err != nil {
		return fail(err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fail(fmt.Errorf("unexpected status %s", res.Status))
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fail(err)
	}

	var formats []*source.Format

	switch transport {
	case source.TransportHLS:
		formats, err = expandHLS(bytes.NewReader(body), base, id, preference)
	case source.TransportDASH:
		formats, err = expandDASH(body, base, id, preference)
	case source.TransportHDS:
		formats, err = expandHDS(body, base, id, preference)
	default:
		err = fmt.Errorf("transport %q has no manifest form", transport)
	}

	if err != nil {
		return fail(err)
	}

	log.Debugf("expanded %s manifest %s into %d formats", transport, rawURL, len(formats))

	return formats, nil
}

// resolveURL resolves a manifest-relative reference against base.
// Unparseable references come back unchanged rather than empty, so a
// broken entry surfaces in the format list instead of vanishing.
func resolveURL(base *url.URL, ref string) *url.URL {
	parsed, err := url.Parse(ref)
	if err != nil {
		return base
	}

	return base.ResolveReference(parsed)
}

func resolveRef(base *url.URL, ref string) string {
	if ref == "" {
		return base.String()
	}

	return resolveURL(base, ref).String()
}
