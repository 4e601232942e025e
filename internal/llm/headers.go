package llm

import (
	"context"
	"net/http"
)

// OpenRouter ranking metadata headers.
const (
	HeaderReferer = "HTTP-Referer"
	HeaderTitle   = "X-Title"
)

type headersKey struct{}

// WithHeaders returns a context that carries extra request headers. They are
// applied on top of the provider defaults for requests made with ctx.
func WithHeaders(ctx context.Context, headers map[string]string) context.Context {
	if len(headers) == 0 {
		return ctx
	}
	return context.WithValue(ctx, headersKey{}, headers)
}

func headersFrom(ctx context.Context) map[string]string {
	h, _ := ctx.Value(headersKey{}).(map[string]string)
	return h
}

// headerTransport sets default and per-request headers on outgoing requests.
type headerTransport struct {
	base     http.RoundTripper
	defaults map[string]string
}

func newHeaderTransport(base http.RoundTripper, defaults map[string]string) *headerTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &headerTransport{base: base, defaults: defaults}
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	extra := headersFrom(req.Context())
	if len(t.defaults) == 0 && len(extra) == 0 {
		return t.base.RoundTrip(req)
	}

	// RoundTrippers must not modify the caller's request.
	req = req.Clone(req.Context())
	for k, v := range t.defaults {
		if v != "" {
			req.Header.Set(k, v)
		}
	}
	for k, v := range extra {
		if v != "" {
			req.Header.Set(k, v)
		}
	}
	return t.base.RoundTrip(req)
}
