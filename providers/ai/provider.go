package ai

import (
	"context"
	"net/http"
)

// Provider is the interface every completion backend must satisfy. It covers
// the full lifecycle of a single request: authentication, endpoint
// configuration and message dispatch.
type Provider interface {
	// Complete sends a chat request to the backend and returns the completed
	// response. Transport-level failures (network, auth, rate limiting) are
	// returned as a *TransportError; the caller decides whether to surface
	// or retry them. Context cancellation mid-call follows the backend's own
	// contract and is also returned as an error.
	Complete(ctx context.Context, request ChatRequest) (*ChatResponse, error)

	// WithAPIKey sets the API key used for authenticating requests.
	WithAPIKey(apiKey string) Provider

	// WithBaseURL overrides the default base URL for API requests.
	WithBaseURL(baseURL string) Provider

	// WithHttpClient sets the HTTP client used for outbound requests.
	WithHttpClient(httpClient *http.Client) Provider
}

// CompleteFunc adapts a plain function into a [Provider]. It is the injection
// point for stubbed completions in tests and for callers that already own a
// configured client and only want to hand the loop a closure.
//
// The With* configuration methods are no-ops: a CompleteFunc owns its whole
// lifecycle and is expected to be fully configured before being passed in.
type CompleteFunc func(ctx context.Context, request ChatRequest) (*ChatResponse, error)

func (f CompleteFunc) Complete(ctx context.Context, request ChatRequest) (*ChatResponse, error) {
	return f(ctx, request)
}

func (f CompleteFunc) WithAPIKey(string) Provider           { return f }
func (f CompleteFunc) WithBaseURL(string) Provider          { return f }
func (f CompleteFunc) WithHttpClient(*http.Client) Provider { return f }
