// Package network provides a pre-configured, optimized HTTP client for concurrent provider communication.
package network

import (
	"net/http"
	"time"

	"github.com/gense-cli/gense/constant"
)

// Client is the singleton HTTP client shared across the application for efficient resource utilization.
// It is tuned for short bursts of concurrent API and manifest fetches against broadcaster CDNs.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: userAgentTransport{base: newTransport()},
}

// newTransport initializes a tuned http.Transport with optimized pool and timeout parameters.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}

// userAgentTransport stamps the default User-Agent on requests that carry none.
// Broadcaster CDNs are known to reject requests without a browser-like agent string.
type userAgentTransport struct {
	base http.RoundTripper
}

func (u userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", constant.UserAgent)
	}
	return u.base.RoundTrip(req)
}
