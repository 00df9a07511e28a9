package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"myfuture/pkg/types"

	"github.com/sirupsen/logrus"
)

// Client issues requests against the MyFuture backend. It mirrors the
// two request primitives every screen shares: an unauthenticated fetch
// and a token-bearing fetch. The client never interprets response
// statuses; callers check them (or use DecodeJSON).
type Client struct {
	baseURL string
	http    *http.Client
	tokens  *TokenStore
	logger  logrus.FieldLogger
}

func New(config *types.Config, tokens *TokenStore, logger logrus.FieldLogger) *Client {
	timeout := time.Duration(config.RequestTimeoutSec) * time.Second
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL: strings.TrimSuffix(config.APIBaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		logger:  logger,
	}
}

// Public issues a request with no credentials attached. It errors only
// on transport-level failure; non-2xx responses are returned as-is.
func (c *Client) Public(ctx context.Context, method, endpoint string, body io.Reader) (*http.Response, error) {
	req, err := c.newRequest(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}

	return c.do(req)
}

// Authenticated issues a request with the stored session token attached
// as a cookie-style header. A missing token fails fast with
// types.ErrUnauthenticated before any network traffic.
func (c *Client) Authenticated(ctx context.Context, method, endpoint string, body io.Reader) (*http.Response, error) {
	session, err := c.tokens.Load()
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Cookie", fmt.Sprintf("token=%s", session.Token))

	return c.do(req)
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", endpoint, err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}

	c.logger.WithFields(logrus.Fields{
		"method":      req.Method,
		"path":        req.URL.Path,
		"status":      resp.StatusCode,
		"duration_ms": time.Since(started).Milliseconds(),
	}).Debug("api request")

	return resp, nil
}
