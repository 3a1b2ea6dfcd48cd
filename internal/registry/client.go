package registry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// maxAssetBytes is the largest accepted response body (10 MiB). Larger
// bodies are rejected, never truncated.
const maxAssetBytes = 10 << 20

// Client fetches asset files from the remote registries
type Client struct {
	httpClient *http.Client
	roots      map[Kind]string
	userAgent  string
	logger     *log.Logger
}

// ClientOption configures a Client during construction
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithRoot sets the registry root URL for an asset kind
func WithRoot(kind Kind, root string) ClientOption {
	return func(cl *Client) {
		cl.roots[kind] = root
	}
}

// WithTimeout sets the request timeout on the default HTTP client
func WithTimeout(d time.Duration) ClientOption {
	return func(cl *Client) {
		if d > 0 {
			cl.httpClient = &http.Client{Timeout: d}
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request
func WithUserAgent(ua string) ClientOption {
	return func(cl *Client) {
		cl.userAgent = ua
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(l *log.Logger) ClientOption {
	return func(cl *Client) {
		cl.logger = l
	}
}

// NewClient creates a registry client. Roots default to empty, so every
// kind in use must be configured with WithRoot.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		roots:      make(map[Kind]string),
		userAgent:  "tailfront/dev",
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the registry URL of a resource
func (c *Client) URL(res Resource) (string, error) {
	root, ok := c.roots[res.Kind]
	if !ok || root == "" {
		return "", fmt.Errorf("no registry configured for %s", res.Kind)
	}
	u, err := url.JoinPath(root, strings.Split(res.File, "/")...)
	if err != nil {
		return "", fmt.Errorf("invalid registry root %q: %w", root, err)
	}
	return u, nil
}

// Fetch downloads one resource and classifies the outcome. 200 is Found,
// 404 is NotFound, anything else (including network failures) is a
// TransportError with Err set.
func (c *Client) Fetch(ctx context.Context, res Resource) FetchResult {
	u, err := c.URL(res)
	if err != nil {
		return FetchResult{Status: StatusTransportError, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return FetchResult{Status: StatusTransportError, URL: u, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("registry request failed", "url", u, "err", err)
		return FetchResult{Status: StatusTransportError, URL: u, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("registry response", "url", u, "status", resp.StatusCode, "elapsed", time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes+1))
		if err == nil && len(body) > maxAssetBytes {
			err = fmt.Errorf("response exceeds %d bytes", maxAssetBytes)
		}
		if err != nil {
			return FetchResult{
				Status:     StatusTransportError,
				StatusCode: resp.StatusCode,
				URL:        u,
				Err:        fmt.Errorf("failed to read response: %w", err),
			}
		}
		return FetchResult{Status: StatusFound, Body: body, StatusCode: resp.StatusCode, URL: u}
	case http.StatusNotFound:
		return FetchResult{Status: StatusNotFound, StatusCode: resp.StatusCode, URL: u}
	default:
		return FetchResult{
			Status:     StatusTransportError,
			StatusCode: resp.StatusCode,
			URL:        u,
			Err:        &StatusError{URL: u, Code: resp.StatusCode},
		}
	}
}
