package geocache

import (
	"io"
	"net/http"
)

type httpClient struct {
	userAgent string
	client    *http.Client
}

func (h httpClient) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", h.userAgent)

	return h.client.Do(req)
}

// NewHTTPClient wraps a stock http.Client so that every request
// carries a stable user agent. Timeouts are whatever the given client
// enforces; no retries or rate limiting happen on this level.
func NewHTTPClient(client *http.Client, userAgent string) HTTPClient {
	return httpClient{
		userAgent: userAgent,
		client:    client,
	}
}

func flushResponse(resp io.ReadCloser) {
	io.Copy(io.Discard, resp) // nolint: errcheck
	resp.Close()
}
