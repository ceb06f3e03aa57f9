package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/five82/quoter/internal/quotes"
)

// QuoteSource defines the sync endpoint operations used by the syncer.
// This interface is implemented by *Client and can be used for testing.
type QuoteSource interface {
	FetchQuotes(ctx context.Context) ([]quotes.Quote, error)
	PushQuotes(ctx context.Context, list []quotes.Quote) ([]quotes.Quote, error)
}

// Ensure Client implements QuoteSource at compile time.
var _ QuoteSource = (*Client)(nil)

// QuoteList is the wire form used by both endpoints.
type QuoteList struct {
	Quotes []quotes.Quote `json:"quotes"`
}

// Client talks to the quote sync HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent = "quoter/0.1"
	requestTimeout   = 5 * time.Second
	quotesPath       = "quotes" // relative to the base path
)

// NewClient builds a Client for the endpoint at rawURL (host:port or full URL).
// A path in rawURL is kept as a prefix for every request.
func NewClient(rawURL string) (*Client, error) {
	base, err := parseBaseURL(rawURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the normalized endpoint URL.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// FetchQuotes retrieves the server's quote list.
func (c *Client) FetchQuotes(ctx context.Context) ([]quotes.Quote, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload QuoteList
	if err := c.do(ctx, http.MethodGet, quotesPath, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Quotes, nil
}

// PushQuotes upserts list on the server and returns the stored copies.
func (c *Client) PushQuotes(ctx context.Context, list []quotes.Quote) ([]quotes.Quote, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if len(list) == 0 {
		return nil, nil
	}
	var payload QuoteList
	if err := c.do(ctx, http.MethodPost, quotesPath, QuoteList{Quotes: list}, &payload); err != nil {
		return nil, err
	}
	return payload.Quotes, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", reqURL.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(rawURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return nil, fmt.Errorf("sync url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse sync url %q: %w", rawURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse sync url %q: missing host", rawURL)
	}
	// A trailing slash makes relative paths resolve under any prefix.
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
