package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Shaoyanting/HT-financial-system/pkg/errors"
	"github.com/Shaoyanting/HT-financial-system/pkg/logger"
)

// DefaultTimeout applies when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// TokenSource supplies the bearer token, if one is stored.
type TokenSource interface {
	Token() (string, bool)
}

// Hooks are injected UI capabilities. Both are optional; silent background
// calls suppress them via Options.
type Hooks struct {
	// Loading is called with true before a request and false after it
	// settles, for a transient loading indicator.
	Loading func(active bool)
	// Error is called with a short message when a request fails.
	Error func(msg string)
}

// Options configures a single request.
type Options struct {
	ShowLoading bool
	ShowError   bool
	Timeout     time.Duration
	Headers     map[string]string
}

// DefaultOptions matches the interactive defaults: visible loading and
// error feedback, 30s timeout.
func DefaultOptions() Options {
	return Options{ShowLoading: true, ShowError: true, Timeout: DefaultTimeout}
}

// Silent suppresses UI feedback, for accessors that handle failure
// themselves by falling back to synthetic data.
func Silent(timeout time.Duration) Options {
	return Options{Timeout: timeout}
}

// Response is a settled 2xx response. The body is kept raw; decoding is a
// separate, content-type-checked step.
type Response struct {
	Status     int
	StatusText string
	Header     http.Header
	RawBody    []byte
}

// ContentType returns the response content type header.
func (r *Response) ContentType() string {
	return r.Header.Get("Content-Type")
}

// Client is the single chokepoint for all outbound HTTP. Redirects are not
// followed: the backend signals session expiry with a 302 to its login
// page, which must surface as an auth failure instead of an HTML body.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	hooks      Hooks
}

// New builds a client resolving relative endpoints against baseURL. The
// underlying transport is OpenTelemetry-instrumented.
func New(baseURL string, tokens TokenSource, hooks Hooks) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		tokens: tokens,
		hooks:  hooks,
	}
}

// Request performs method against endpoint with an optional JSON body.
// Errors are always *errors.FetchError values classified by kind.
func (c *Client) Request(ctx context.Context, method, endpoint string, body any, opts Options) (*Response, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	if opts.ShowLoading && c.hooks.Loading != nil {
		c.hooks.Loading(true)
		defer c.hooks.Loading(false)
	}

	resp, err := c.do(ctx, method, endpoint, body, timeout, opts.Headers)
	if err != nil {
		if opts.ShowError && c.hooks.Error != nil {
			c.hooks.Error(err.Error())
		}
		return nil, err
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, timeout time.Duration, headers map[string]string) (*Response, *errors.FetchError) {
	url := endpoint
	if !strings.HasPrefix(endpoint, "http") {
		url = c.baseURL + endpoint
	}

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, errors.NewNetwork(fmt.Errorf("failed to marshal request: %w", err))
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, errors.NewNetwork(fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			logger.Warn().Str("url", url).Dur("timeout", timeout).Msg("request timed out")
			return nil, errors.NewTimeout(err)
		}
		return nil, errors.NewNetwork(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewNetwork(fmt.Errorf("failed to read response: %w", err))
	}

	switch {
	case resp.StatusCode >= 300 && resp.StatusCode < 400:
		location := resp.Header.Get("Location")
		logger.Warn().Int("status", resp.StatusCode).Str("location", location).Msg("API redirect")
		if resp.StatusCode == http.StatusFound {
			// The backend 302s to its login page when the session expired.
			return nil, errors.NewAuthRequired(location)
		}
		return nil, errors.NewHTTP(resp.StatusCode, http.StatusText(resp.StatusCode), string(respBody))

	case resp.StatusCode == http.StatusUnauthorized:
		return nil, errors.NewAuthRequired("")

	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, errors.NewHTTP(resp.StatusCode, http.StatusText(resp.StatusCode), parseErrorBody(respBody))
	}

	return &Response{
		Status:     resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
		Header:     resp.Header,
		RawBody:    respBody,
	}, nil
}

// parseErrorBody tries JSON first, keeping raw text otherwise.
func parseErrorBody(body []byte) any {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err == nil {
		return decoded
	}
	return string(body)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, endpoint string, opts Options) (*Response, error) {
	return c.Request(ctx, http.MethodGet, endpoint, nil, opts)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, body any, opts Options) (*Response, error) {
	return c.Request(ctx, http.MethodPost, endpoint, body, opts)
}

// Decode unmarshals a 2xx response into T after verifying the content type
// is JSON. A hosting-provider landing page served as text/html with status
// 200 must read as a failure, not as data.
func Decode[T any](resp *Response) (*T, error) {
	ct := resp.ContentType()
	if !strings.Contains(ct, "application/json") {
		return nil, errors.NewDecode(ct)
	}
	var out T
	if err := json.Unmarshal(resp.RawBody, &out); err != nil {
		return nil, errors.ErrDecode.WithError(err)
	}
	return &out, nil
}
