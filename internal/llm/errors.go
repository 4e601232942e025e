package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"

	openai "github.com/sashabaranov/go-openai"
)

// Error kinds returned by providers. Match them with errors.Is.
var (
	ErrNetwork       = errors.New("network error")
	ErrProtocol      = errors.New("protocol error")
	ErrEmptyResponse = errors.New("empty response")
)

// Error is a classified provider failure. It matches its Kind with errors.Is
// and unwraps to the underlying transport or decoding error.
type Error struct {
	Kind       error
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.Err == nil:
		return e.Kind.Error()
	case e.StatusCode != 0:
		return fmt.Sprintf("%s (status %d): %v", e.Kind, e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindName returns a short identifier for the error kind of err, or "" if err
// is not a classified provider error.
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrNetwork):
		return "network"
	case errors.Is(err, ErrProtocol):
		return "protocol"
	case errors.Is(err, ErrEmptyResponse):
		return "empty_response"
	default:
		return ""
	}
}

// Classify maps an error from the go-openai client onto one of the error kinds.
// Anything that is neither an HTTP status failure nor a transport failure is a
// response that could not be decoded.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &Error{Kind: ErrProtocol, StatusCode: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &Error{Kind: ErrProtocol, StatusCode: reqErr.HTTPStatusCode, Err: err}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: ErrNetwork, Err: err}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &Error{Kind: ErrNetwork, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &Error{Kind: ErrNetwork, Err: err}
	}

	return &Error{Kind: ErrProtocol, Err: err}
}
