// Package twitch is a small client for the v3 channel/stream REST API used by
// twnotify: the follow list of a user, the stream of one channel, and the
// streams of up to MaxBatch channels at once.
package twitch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	// DefaultBaseURL is the API root all endpoints are resolved against.
	DefaultBaseURL = "https://api.twitch.tv/kraken"

	// MediaType is sent as the Accept header on every request.
	MediaType = "application/vnd.twitchtv.v3+json"

	// PageSize is the limit used when paging through follows.
	PageSize = 100

	// MaxBatch is the maximum number of channels per multi-stream request.
	MaxBatch = 100

	// DefaultTimeout applies when no http.Client is supplied.
	DefaultTimeout = 30 * time.Second
)

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// Options configures a Client. Zero values select the defaults.
type Options struct {
	BaseURL    string
	ClientID   string
	UserAgent  string
	HTTPClient *http.Client
}

// Client issues requests against the API.
type Client struct {
	baseURL    string
	clientID   string
	userAgent  string
	httpClient *http.Client
}

// NewClient creates a Client from opts.
func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		baseURL:    baseURL,
		clientID:   opts.ClientID,
		userAgent:  opts.UserAgent,
		httpClient: httpClient,
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// getJSON performs a GET on path with query and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Accept", MediaType)
	if c.clientID != "" {
		req.Header.Set("Client-ID", c.clientID)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "GET %s", endpoint)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.WithStack(&StatusError{
			Method:     http.MethodGet,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		})
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decoding %s", endpoint)
	}
	return nil
}
