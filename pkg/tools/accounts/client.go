package accounts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const searchPath = "/personal-accounts/search"

// DefaultTimeout bounds a single search call when no http.Client is supplied.
const DefaultTimeout = 30 * time.Second

// Searcher runs one search request against the personal accounts dataset.
type Searcher interface {
	Search(ctx context.Context, req SearchRequest) (Records, error)
}

// Records is the JSON array returned by a successful search, kept byte for byte.
type Records struct {
	raw   []byte
	count int
}

// Len returns the number of account records.
func (r Records) Len() int { return r.count }

// Raw returns the array exactly as the endpoint sent it.
func (r Records) Raw() []byte { return bytes.Clone(r.raw) }

// Indent renders the array with two-space indentation. Keys, key order and
// values are reproduced as received.
func (r Records) Indent() (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, r.raw, "", "  "); err != nil {
		return "", fmt.Errorf("indent records: %w", err)
	}
	return buf.String(), nil
}

// ParseRecords accepts body only if it is a JSON array.
func ParseRecords(body []byte) (Records, error) {
	body = bytes.TrimSpace(body)
	if !gjson.ValidBytes(body) {
		return Records{}, &TransportError{Err: errors.New("invalid JSON in search response")}
	}
	result := gjson.ParseBytes(body)
	if !result.IsArray() {
		return Records{}, &TransportError{Err: errors.New("unexpected search response: expected a JSON array")}
	}
	return Records{raw: body, count: len(result.Array())}, nil
}

// Client calls the remote search endpoint over HTTP with a static bearer token.
// It is safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a Client for the API rooted at baseURL.
func NewClient(baseURL, token string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search POSTs the request once. A non-2xx answer yields *RemoteError carrying
// the status and raw body; any other failure yields *TransportError.
func (c *Client) Search(ctx context.Context, req SearchRequest) (Records, error) {
	url := c.baseURL + searchPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(req.body))
	if err != nil {
		return Records{}, &TransportError{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.DebugContext(ctx, "search request failed", slog.String("url", url), slog.Any("error", err))
		return Records{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Records{}, &TransportError{Err: fmt.Errorf("read search response: %w", err)}
	}

	c.logger.DebugContext(ctx, "search response",
		slog.String("url", url), slog.Int("status", resp.StatusCode), slog.Int("bytes", len(body)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Records{}, &RemoteError{Status: resp.StatusCode, Body: string(body)}
	}
	return ParseRecords(body)
}
