package feed

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/neolatino/neolatino-api/internal/config"
)

// ErrFetchFailed is the transport-level error kind: the feed host could not
// be reached or did not return the document. The store does not retry —
// retry policy belongs to the refresh scheduler.
var ErrFetchFailed = errors.New("feed: fetch failed")

// Fetcher retrieves the raw feed document. Any transport (HTTP, file,
// in-memory fake) satisfying this contract is acceptable to the store.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// HTTPFetcher fetches the published CSV feed over HTTP(S). The client is
// built once, with the configured auth and TLS options, and reused across
// fetches. The configured timeout bounds each fetch; the store imposes none
// of its own.
type HTTPFetcher struct {
	url    string
	client *http.Client
}

// NewHTTPFetcher builds a fetcher for the configured feed.
func NewHTTPFetcher(cfg config.FeedConfig) *HTTPFetcher {
	transport := &authRoundTripper{
		base: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: cfg.TLS.InsecureSkipVerify, //nolint:gosec // user-configured
			},
		},
		auth: cfg.Auth,
	}
	return &HTTPFetcher{
		url: cfg.URL,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
	}
}

// URL returns the feed URL this fetcher reads from.
func (f *HTTPFetcher) URL() string { return f.url }

// Fetch performs an HTTP GET and returns the response body. Every failure —
// connectivity, non-200 status, truncated body — wraps ErrFetchFailed.
func (f *HTTPFetcher) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrFetchFailed, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", ErrFetchFailed, f.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: get %s: unexpected status %d", ErrFetchFailed, f.url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrFetchFailed, err)
	}
	return body, nil
}

// authRoundTripper injects authentication headers into every outgoing request.
type authRoundTripper struct {
	base http.RoundTripper
	auth config.FeedAuthConfig
}

func (t *authRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	switch t.auth.Mode {
	case "apikey":
		req = req.Clone(req.Context())
		req.Header.Set(t.auth.Header, t.auth.Key())
	case "bearer":
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+t.auth.Token())
	case "basic":
		req = req.Clone(req.Context())
		req.SetBasicAuth(t.auth.Username, t.auth.Password())
	}
	return t.base.RoundTrip(req)
}
