// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apiclient is the single configured HTTP client used by every service
module to talk to the learning backend and the content backend.

# Architecture

The client holds no ambient authorization state. Each call receives an explicit
[Credential], so a session change can never race with a request that is
already on the wire.

Response mapping is uniform for every module:

  - 2xx: the JSON body is decoded into the caller's value.
  - 401: [apperr.Unauthorized].
  - other non-2xx: [apperr.Upstream] carrying the backend's message.
  - transport failure: [apperr.BadGateway]; deadline: [apperr.GatewayTimeout].

There are no retries and no backoff. Every call is bound to its context and a
per-request timeout.
*/
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/taibuivan/vocaboard/internal/platform/apperr"
	"github.com/taibuivan/vocaboard/internal/platform/constants"
	"github.com/taibuivan/vocaboard/internal/platform/ctxutil"
)

// maxResponseBytes bounds how much of an upstream body is read.
const maxResponseBytes = 4 << 20

// # Client Definition

// Client issues JSON requests against one backend base URL.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
}

// Option customizes a [Client].
type Option func(*Client)

// WithHTTPClient replaces the underlying [http.Client].
func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) {
		if httpClient != nil {
			client.httpClient = httpClient
		}
	}
}

// WithTimeout sets the per-request deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(client *Client) {
		if timeout > 0 {
			client.timeout = timeout
		}
	}
}

// WithLogger sets the fallback logger used when the context carries none.
func WithLogger(logger *slog.Logger) Option {
	return func(client *Client) {
		if logger != nil {
			client.logger = logger
		}
	}
}

// New builds a client for baseURL. A non-empty version is appended as a path
// segment once, so callers only pass resource paths ("topics/42").
func New(baseURL, version string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("apiclient: invalid base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("apiclient: base URL must be http(s), got %q", baseURL)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("apiclient: base URL has no host: %q", baseURL)
	}

	if version = strings.Trim(version, "/"); version != "" {
		parsed = parsed.JoinPath(version)
	}

	client := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{},
		timeout:    constants.DefaultUpstreamTimeout,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// BaseURL returns the resolved base URL including the version segment.
func (client *Client) BaseURL() string {
	return client.baseURL.String()
}

// # JSON Verbs

// Get issues a GET with optional query parameters and decodes the body into out.
func (client *Client) Get(ctx context.Context, cred Credential, path string, query url.Values, out any) error {
	return client.Do(ctx, cred, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with a JSON body.
func (client *Client) Post(ctx context.Context, cred Credential, path string, body, out any) error {
	return client.Do(ctx, cred, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT with a JSON body.
func (client *Client) Put(ctx context.Context, cred Credential, path string, body, out any) error {
	return client.Do(ctx, cred, http.MethodPut, path, nil, body, out)
}

// Patch issues a PATCH with a JSON body.
func (client *Client) Patch(ctx context.Context, cred Credential, path string, body, out any) error {
	return client.Do(ctx, cred, http.MethodPatch, path, nil, body, out)
}

// Delete issues a DELETE. out may be nil when the backend answers 204.
func (client *Client) Delete(ctx context.Context, cred Credential, path string, out any) error {
	return client.Do(ctx, cred, http.MethodDelete, path, nil, nil, out)
}

// Do issues exactly one HTTP call and maps the outcome to a value or an [*apperr.AppError].
func (client *Client) Do(ctx context.Context, cred Credential, method, path string, query url.Values, body, out any) error {
	var payload io.Reader
	contentType := ""

	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperr.Internal(fmt.Errorf("apiclient: encode %s %s: %w", method, path, err))
		}
		payload = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	return client.send(ctx, cred, method, path, query, payload, contentType, out)
}

// # Transport

// send builds the request, applies the credential, and maps the response.
func (client *Client) send(ctx context.Context, cred Credential, method, path string, query url.Values, payload io.Reader, contentType string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, client.timeout)
	defer cancel()

	endpoint := client.endpoint(path, query)

	request, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return apperr.Internal(fmt.Errorf("apiclient: build %s %s: %w", method, path, err))
	}

	// ── 1. Headers ────────────────────────────────────────────────────────
	request.Header.Set(constants.HeaderAccept, "application/json")
	if contentType != "" {
		request.Header.Set(constants.HeaderContentType, contentType)
	}
	if requestID := ctxutil.GetRequestID(ctx); requestID != "" {
		request.Header.Set(constants.HeaderXRequestID, requestID)
	}
	if err := cred.apply(request); err != nil {
		return err
	}

	// ── 2. Round Trip ─────────────────────────────────────────────────────
	logger := client.loggerFor(ctx)
	startTime := time.Now()

	response, err := client.httpClient.Do(request)
	if err != nil {
		logger.WarnContext(ctx, "upstream_request_failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err),
		)
		if errors.Is(err, context.DeadlineExceeded) {
			return apperr.GatewayTimeout(err)
		}
		return apperr.BadGateway(err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return apperr.BadGateway(fmt.Errorf("apiclient: read body: %w", err))
	}

	latency := time.Since(startTime).Milliseconds()

	// ── 3. Failure Mapping ────────────────────────────────────────────────
	if response.StatusCode < 200 || response.StatusCode > 299 {
		message := extractMessage(raw)
		logger.WarnContext(ctx, "upstream_request_rejected",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", response.StatusCode),
			slog.Int64("latency_ms", latency),
			slog.String("upstream_message", message),
		)

		if response.StatusCode == http.StatusUnauthorized {
			if message == "" {
				message = "Session is not valid"
			}
			return apperr.Unauthorized(message)
		}
		return apperr.Upstream(response.StatusCode, message)
	}

	logger.DebugContext(ctx, "upstream_request_finished",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", response.StatusCode),
		slog.Int64("latency_ms", latency),
	)

	// ── 4. Success Decoding ───────────────────────────────────────────────
	if out == nil || response.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperr.BadGateway(fmt.Errorf("apiclient: decode %s %s: %w", method, path, err))
	}

	return nil
}

// endpoint joins path onto the base URL. JoinPath cleans "." and ".." segments.
func (client *Client) endpoint(path string, query url.Values) string {
	target := client.baseURL.JoinPath(strings.TrimLeft(path, "/"))
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}
	return target.String()
}

// loggerFor prefers the per-request logger carried in ctx.
func (client *Client) loggerFor(ctx context.Context) *slog.Logger {
	if logger := ctxutil.GetLogger(ctx); logger != slog.Default() {
		return logger
	}
	return client.logger
}

// # Error Bodies

// extractMessage reads the backend's human-readable message from an error body.
//
// Accepted shapes: {"message": "..."}, {"error": "..."} and
// {"error": {"message": "..."}}.
func extractMessage(raw []byte) string {
	var body struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	if len(body.Error) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(body.Error, &text); err == nil {
		return text
	}

	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body.Error, &nested); err == nil {
		return nested.Message
	}

	return ""
}
