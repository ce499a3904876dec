// Package futapi is the client for the remote FutPlan REST API. Every call
// attaches the session's bearer token when one is set.
package futapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultTimeout  = 10 * time.Second
	maxErrorBodyLen = 64 << 10
)

var (
	// ErrTransport wraps failures where no HTTP response was received.
	ErrTransport = errors.New("upstream request failed")
	// ErrMalformedResponse wraps success responses whose body could not be decoded.
	ErrMalformedResponse = errors.New("malformed upstream response")
)

// APIError is a non-success HTTP status from the upstream. Message is user facing.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	token      string
}

type Option func(*Client)

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse upstream base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("upstream base url must be absolute: %q", baseURL)
	}

	c := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// WithToken returns a copy of the client that authenticates as token.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// errorPolicy decides how a non-success response becomes an APIError.
type errorPolicy struct {
	// keys are the JSON body fields consulted for a message, in order.
	keys []string
	// fallback is used when the body has no message. Empty means "Erro <status>".
	fallback string
}

func (p errorPolicy) apiError(status int, body []byte) *APIError {
	if msg := messageFromBody(body, p.keys); msg != "" {
		return &APIError{Status: status, Message: msg}
	}
	if p.fallback != "" {
		return &APIError{Status: status, Message: p.fallback}
	}
	return &APIError{Status: status, Message: fmt.Sprintf("Erro %d", status)}
}

func messageFromBody(body []byte, keys []string) string {
	if len(body) == 0 {
		return ""
	}
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, key := range keys {
		if msg, ok := payload[key].(string); ok && strings.TrimSpace(msg) != "" {
			return msg
		}
	}
	return ""
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, policy errorPolicy) error {
	logger := log.Ctx(ctx)
	endpoint := c.baseURL.String() + path

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("Upstream request failed")
		return fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Upstream request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
		return policy.apiError(resp.StatusCode, raw)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrMalformedResponse, method, path, err)
	}
	return nil
}
