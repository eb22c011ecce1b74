// Package api is the client for the ticket-manager REST collaborator. It
// wraps HTTP with bearer-credential injection and normalizes every error
// response into the session error taxonomy, so callers only ever see typed
// errors. The typed endpoint surface (auth, tickets, projects, users,
// comments, dashboard, settings) is built on the generic request plumbing
// here.
package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"github.com/yamadatarousan/ticket-manager/internal/session"
)

// TokenProvider supplies the bearer credential attached to requests. The
// credential store satisfies this directly.
type TokenProvider interface {
	Load() (string, error)
}

// Client makes requests to the collaborator server.
type Client struct {
	baseURL        string
	tokens         TokenProvider
	httpClient     *http.Client
	onUnauthorized func()
}

// NewClient creates a client for the given server URL. The credential is read
// from the provider on every request, so a login taking effect mid-run is
// picked up without rebuilding the client.
func NewClient(baseURL string, tokens TokenProvider) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// OnUnauthorized registers the hook invoked when a non-auth-flow request gets
// a 401. The session manager wires its credential-rejection handling here, so
// no call site can opt out of the expiry policy.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// RequestOptions describes a single request.
type RequestOptions struct {
	Method string            // HTTP method (GET, POST, PUT, DELETE)
	Path   string            // endpoint path relative to the server URL
	Query  map[string]string // optional query parameters
	Body   []byte            // optional JSON request body
	// AuthFlow marks login/register/logout requests, where a 401 means the
	// submitted credentials were rejected rather than that the session
	// expired. AuthFlow requests never trigger the unauthorized hook.
	AuthFlow bool
}

// DoRequest performs a request and returns the response body. Transport
// failures on GET requests are retried a few times before surfacing as
// ErrNetworkUnavailable; non-idempotent methods get a single attempt. Every
// non-2xx response is converted into one of the session error kinds.
func (c *Client) DoRequest(ctx context.Context, opts RequestOptions) ([]byte, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, session.ErrUnhandled.Msg("invalid server URL: " + err.Error())
	}
	u.Path = path.Join(u.Path, opts.Path)

	q := u.Query()
	for k, v := range opts.Query {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()

	token, err := c.tokens.Load()
	if err != nil {
		log.Warn().Err(err).Msg("failed to read credential; sending request unauthenticated")
		token = ""
	}

	// one request ID across retries so the attempts correlate server-side
	requestID := uuid.NewString()

	attempt := func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, opts.Method, u.String(), bytes.NewReader(opts.Body))
		if err != nil {
			return nil, retry.Unrecoverable(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Request-ID", requestID)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return c.httpClient.Do(req)
	}

	var resp *http.Response
	if opts.Method == http.MethodGet {
		err = retry.Do(
			func() error {
				r, derr := attempt()
				if derr != nil {
					return derr
				}
				resp = r
				return nil
			},
			retry.Attempts(3),
			retry.Delay(200*time.Millisecond),
			retry.LastErrorOnly(true),
			retry.Context(ctx),
		)
	} else {
		// non-idempotent methods are never retried
		resp, err = attempt()
	}
	if err != nil {
		return nil, session.ErrNetworkUnavailable.Msg("cannot reach server: " + err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, session.ErrUnhandled.Msg("failed to read response body: " + err.Error())
	}

	log.Debug().
		Str("method", opts.Method).
		Str("path", opts.Path).
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Msg("api request")

	if resp.StatusCode < 400 {
		return body, nil
	}
	return nil, c.errorFromResponse(resp.StatusCode, body, opts.AuthFlow)
}

// errorFromResponse maps a non-2xx response onto the session error taxonomy.
func (c *Client) errorFromResponse(status int, body []byte, authFlow bool) error {
	msg := errorMessage(status, body)
	switch {
	case status == http.StatusUnauthorized && authFlow:
		return session.ErrAuthenticationRejected.Msg(msg)
	case status == http.StatusUnauthorized:
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return session.ErrSessionExpired.Msg(msg)
	case status == http.StatusUnprocessableEntity:
		return session.ErrValidationRejected.Msg(msg)
	}
	return session.ErrUnhandled.Msg(msg).SetStatusCode(status)
}

// errorMessage pulls the collaborator's error copy out of a response body.
// Error responses carry at least one of {error, message}; validation
// failures may instead carry a field-keyed errors object.
func errorMessage(status int, body []byte) string {
	if m := gjson.GetBytes(body, "error"); m.Exists() && m.String() != "" {
		return m.String()
	}
	if m := gjson.GetBytes(body, "message"); m.Exists() && m.String() != "" {
		return m.String()
	}
	if errs := gjson.GetBytes(body, "errors"); errs.IsObject() {
		var parts []string
		errs.ForEach(func(key, value gjson.Result) bool {
			parts = append(parts, key.String()+": "+value.String())
			return true
		})
		if len(parts) > 0 {
			return strings.Join(parts, "; ")
		}
	}
	return http.StatusText(status)
}
