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
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thermowatch/thermowatch/core/logger"
	"github.com/thermowatch/thermowatch/core/session"
)

// DefaultTimeout bounds each request when no custom http.Client is supplied.
const DefaultTimeout = 15 * time.Second

// CredentialSource supplies the session snapshot consulted at call time.
// session.Store satisfies this interface.
type CredentialSource interface {
	Current() session.Session
}

// Client performs single-attempt, classified calls against the backend.
// When the credential source reports an authenticated session, the bearer
// credential is attached to the request; otherwise no credential header is
// sent. The client never retries, never refreshes tokens, and never gates:
// callers consult the access gate before invoking protected endpoints.
//
// Every failure is classified into the package taxonomy (ErrUnauthorized,
// *ValidationError, ErrServiceUnavailable, ErrMalformedResponse); no call
// surfaces a raw transport error.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      CredentialSource
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. Useful for tests and
// for callers that need custom transport settings.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout on the underlying http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger configures structured logging of requests at debug level.
// Logging is disabled by default.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.logger = log
		}
	}
}

// New creates a client for the backend at baseURL. The credential source may
// be nil for public-only use; protected calls then go out without a bearer
// header and come back as ErrUnauthorized.
func New(baseURL string, creds CredentialSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		creds:      creds,
		logger:     logger.Discard(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Call performs one request and decodes a 2xx response body into out (when
// out is non-nil). The bearer credential is attached iff the session is
// authenticated at call time. Classification:
//
//   - HTTP 401                      → ErrUnauthorized
//   - other 4xx with {"error": msg} → *ValidationError carrying msg
//   - any other non-2xx            → ErrServiceUnavailable
//   - transport failure            → ErrServiceUnavailable
//   - 2xx with undecodable body    → *ValidationError("malformed response")
func (c *Client) Call(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, body, out, true)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, withAuth bool) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &ValidationError{Message: fmt.Sprintf("invalid request payload: %v", err)}
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.Join(ErrServiceUnavailable, err)
	}

	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withAuth {
		if sess := c.session(); sess.IsAuthenticated() {
			req.Header.Set("Authorization", "Bearer "+sess.Credential)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "request failed",
			logger.Method(method),
			logger.Path(path),
			logger.RequestID(requestID),
			logger.Error(err),
		)
		return errors.Join(ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "request finished",
		logger.Method(method),
		logger.Path(path),
		logger.StatusCode(resp.StatusCode),
		logger.RequestID(requestID),
		logger.Elapsed(start),
	)

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if msg := decodeErrorMessage(resp.Body); msg != "" && resp.StatusCode < 500 {
			return &ValidationError{Message: msg}
		}
		return fmt.Errorf("%w: unexpected status %d", ErrServiceUnavailable, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ValidationError{Message: "malformed response", Cause: ErrMalformedResponse}
	}
	return nil
}

func (c *Client) session() session.Session {
	if c.creds == nil {
		return session.Session{}
	}
	return c.creds.Current()
}

// errorBody is the structured shape validation failures come back in.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func decodeErrorMessage(r io.Reader) string {
	var body errorBody
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Message
}
