// Package api wraps outbound HTTP requests to the TinyLink backend:
// it attaches the bearer credential, merges headers, raises a uniform
// error on non-success statuses and decodes strictly by content type.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tinylink/tinylink-cli/internal/logging"
)

// CredentialSource yields the current bearer credential, or "" when the
// session is unauthenticated. The adapter only ever reads the credential;
// it never writes session state.
type CredentialSource interface {
	Credential() string
}

// CredentialFunc adapts a plain function to CredentialSource. It lets the
// adapter be constructed before the session store that will feed it.
type CredentialFunc func() string

func (f CredentialFunc) Credential() string { return f() }

// Options carries the per-call request parameters.
type Options struct {
	Method string      // defaults to GET
	Body   any         // marshaled to JSON when non-nil
	Header http.Header // merged over the defaults, caller wins on conflict
}

// Result is a decoded success response. Exactly one of JSON and Text is
// populated, chosen by the declared Content-Type, never by sniffing.
type Result struct {
	JSON json.RawMessage
	Text string
}

type Client struct {
	baseURL string
	http    *http.Client
	creds   CredentialSource
	log     logging.Logger
}

func New(baseURL string, timeout time.Duration, creds CredentialSource, log logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		creds:   creds,
		log:     log.With("component", "api"),
	}
}

// Call performs one request against the backend. On a non-2xx status it
// returns a *RequestError carrying the status and body text; transport
// failures are wrapped in ErrUnavailable.
func (c *Client) Call(ctx context.Context, path string, opts Options) (*Result, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	for k, vals := range opts.Header {
		req.Header.Del(k)
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	if token := c.creds.Credential(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request transport failure", "method", method, "path", path, "error", err)
		return nil, &transportError{err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &transportError{err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "status", resp.StatusCode)
		return nil, &RequestError{Status: resp.StatusCode, Body: string(data)}
	}

	if isJSON(resp.Header.Get("Content-Type")) {
		return &Result{JSON: data}, nil
	}
	return &Result{Text: string(data)}, nil
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// transportError ties a transport failure to the ErrUnavailable sentinel
// while keeping the underlying cause available for logs.
type transportError struct {
	err error
}

func (e *transportError) Error() string   { return ErrUnavailable.Error() + ": " + e.err.Error() }
func (e *transportError) Unwrap() []error { return []error{ErrUnavailable, e.err} }
