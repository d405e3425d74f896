package geocache

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"regexp"
)

// DefaultEndpoint is the base URL of the geolocation provider.
const DefaultEndpoint = "https://api.ip2location.io/"

// addressRegexp is a deliberately loose syntax check: four dot
// separated groups of 1-3 digits, no range validation per octet.
var addressRegexp = regexp.MustCompile(`^\d{1,3}(\.\d{1,3}){3}$`)

// Client queries the remote provider for a single IP address at a
// time. It does exactly one attempt per call: no retries, no backoff.
type Client struct {
	http     HTTPClient
	apiKey   string
	endpoint string
}

// Lookup resolves one IP address against the provider.
//
// An address which fails the dotted-quad syntax check is rejected with
// ErrInvalidAddress before any network activity. A nil client (remote
// lookups disabled) rejects everything with ErrAPIDisabled. Transport
// failures and undecodable bodies are distinguishable by errors.Is
// against ErrTransport and ErrResponseParse.
func (c *Client) Lookup(ctx context.Context, ip string) (Location, error) {
	loc := Location{}

	if !addressRegexp.MatchString(ip) {
		return loc, wrapError(ErrInvalidAddress, nil)
	}

	if c == nil {
		return loc, wrapError(ErrAPIDisabled, nil)
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(ip), nil)

	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return loc, wrapError(ErrTransport, err)
	}

	defer flushResponse(resp.Body)

	jsonDecoder := json.NewDecoder(bufio.NewReader(resp.Body))

	if err := jsonDecoder.Decode(&loc); err != nil {
		return loc, wrapError(ErrResponseParse, err)
	}

	loc.IP = ip

	return loc, nil
}

func (c *Client) buildURL(ip string) string {
	getQuery := url.Values{}

	getQuery.Set("key", c.apiKey)
	getQuery.Set("ip", ip)
	getQuery.Set("format", "json")

	return c.endpoint + "?" + getQuery.Encode()
}

// NewClient builds a provider client. An empty endpoint falls back to
// DefaultEndpoint.
func NewClient(httpClient HTTPClient, apiKey, endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &Client{
		http:     httpClient,
		apiKey:   apiKey,
		endpoint: endpoint,
	}
}
