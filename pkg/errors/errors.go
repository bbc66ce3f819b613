package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a data-fetch failure. The data access layer decides per
// kind whether to substitute synthetic data or to propagate the error.
type Kind string

const (
	// KindTimeout means no response arrived within the configured window.
	KindTimeout Kind = "TIMEOUT"
	// KindAuthRequired means the backend signaled session expiry, either
	// with a 401 or with a 302 redirect to its login page.
	KindAuthRequired Kind = "AUTH_REQUIRED"
	// KindHTTP covers any other non-2xx response.
	KindHTTP Kind = "HTTP_ERROR"
	// KindDecode means the body could not be interpreted as the expected
	// JSON payload, typically an HTML landing page served with status 200.
	KindDecode Kind = "DECODE_ERROR"
	// KindNetwork covers transport-level failures before any response.
	KindNetwork Kind = "NETWORK_ERROR"
)

// FetchError is the typed error raised by the HTTP transport and inspected
// by the data access layer.
type FetchError struct {
	Kind    Kind   `json:"kind"`
	Status  int    `json:"status"`
	Message string `json:"message"`
	Body    any    `json:"body,omitempty"`
	Err     error  `json:"-"`
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %d %s (%v)", e.Kind, e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %d %s", e.Kind, e.Status, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is matches on Kind so callers can use errors.Is with the sentinel values
// below without caring about status or body.
func (e *FetchError) Is(target error) bool {
	var fe *FetchError
	if !errors.As(target, &fe) {
		return false
	}
	return e.Kind == fe.Kind
}

func (e *FetchError) WithBody(body any) *FetchError {
	return &FetchError{
		Kind:    e.Kind,
		Status:  e.Status,
		Message: e.Message,
		Body:    body,
		Err:     e.Err,
	}
}

func (e *FetchError) WithError(err error) *FetchError {
	return &FetchError{
		Kind:    e.Kind,
		Status:  e.Status,
		Message: e.Message,
		Body:    e.Body,
		Err:     err,
	}
}

// Sentinels for errors.Is checks. Construct concrete errors with the
// New* helpers so status and body are filled in.
var (
	ErrTimeout      = &FetchError{Kind: KindTimeout, Status: http.StatusRequestTimeout, Message: "request timed out"}
	ErrAuthRequired = &FetchError{Kind: KindAuthRequired, Status: http.StatusUnauthorized, Message: "authentication required"}
	ErrHTTP         = &FetchError{Kind: KindHTTP, Message: "request failed"}
	ErrDecode       = &FetchError{Kind: KindDecode, Message: "unexpected response format"}
	ErrNetwork      = &FetchError{Kind: KindNetwork, Message: "network error"}
)

func NewTimeout(err error) *FetchError {
	return ErrTimeout.WithError(err)
}

func NewAuthRequired(redirectURL string) *FetchError {
	e := &FetchError{Kind: KindAuthRequired, Status: http.StatusUnauthorized, Message: "authentication required"}
	if redirectURL != "" {
		e.Body = map[string]string{"redirectUrl": redirectURL}
	}
	return e
}

func NewHTTP(status int, statusText string, body any) *FetchError {
	return &FetchError{Kind: KindHTTP, Status: status, Message: statusText, Body: body}
}

func NewDecode(contentType string) *FetchError {
	return &FetchError{
		Kind:    KindDecode,
		Status:  http.StatusOK,
		Message: fmt.Sprintf("expected JSON response, got %q", contentType),
	}
}

func NewNetwork(err error) *FetchError {
	return &FetchError{Kind: KindNetwork, Status: http.StatusInternalServerError, Message: "network error", Err: err}
}

// IsAuthRequired reports whether err is an authentication failure. This is
// the one error class the data access layer never masks with mock data.
func IsAuthRequired(err error) bool {
	return errors.Is(err, ErrAuthRequired)
}

// KindOf extracts the Kind from err, or "" if err is not a FetchError.
func KindOf(err error) Kind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}
