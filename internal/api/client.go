package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adilkhann/dayrep/internal/config"
)

// TokenSource supplies the persisted bearer token, if any. The session
// store implements it; the adapter only ever reads.
type TokenSource interface {
	Token() string
}

// Client talks to the report API. It attaches the bearer token to every
// request, repackages failures into the typed errors of this package, and
// reports 401s through a single registered callback so the session store
// keeps sole ownership of the credential cache.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	onUnauthorized func()
	pagedTimeout   time.Duration
	logger         *slog.Logger
	debug          bool
}

// New creates a client for the API at cfg.APIURL.
func New(cfg *config.Config, tokens TokenSource) *Client {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	return &Client{
		baseURL:      strings.TrimRight(cfg.APIURL, "/"),
		httpClient:   &http.Client{},
		tokens:       tokens,
		pagedTimeout: cfg.PagedTimeout,
		logger:       logger,
		debug:        cfg.Debug,
	}
}

// OnUnauthorized registers the callback invoked whenever the server answers
// 401. The callback runs before the AuthError is returned to the caller.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// do performs one request. A nil out skips response decoding.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	var reqBody io.Reader
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	requestID := ""
	if c.debug {
		requestID = uuid.New().String()
		c.logger.Debug("api request",
			"requestId", requestID,
			"method", method,
			"url", endpoint,
			"headers", redactHeaders(req.Header),
			"body", string(payload))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.debug {
			c.logger.Error("api request failed", "requestId", requestID, "error", err)
		}
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}

	if c.debug {
		c.logger.Debug("api response",
			"requestId", requestID,
			"status", resp.StatusCode,
			"bytes", len(data))
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return &AuthError{Message: serverMessage(data)}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &APIError{StatusCode: resp.StatusCode, Message: serverMessage(data)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// serverMessage pulls the human-readable message out of an error body.
func serverMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

// redactHeaders copies headers for logging with the token value masked.
// Bearer tokens must never reach the log output.
func redactHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for key, values := range h {
		if strings.EqualFold(key, "Authorization") {
			out[key] = "Bearer [redacted]"
			continue
		}
		out[key] = strings.Join(values, ", ")
	}
	return out
}
