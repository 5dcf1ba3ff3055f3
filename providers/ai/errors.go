package ai

import "fmt"

// TransportError reports a failure to obtain a completion at all: network
// errors, authentication failures, rate limiting, malformed provider
// payloads. It deliberately excludes content problems (invalid JSON, schema
// violations); those are produced and handled downstream of the provider.
//
// StatusCode is the HTTP status reported by the backend, or 0 when the
// failure happened before a status was received (DNS, connect, timeout).
type TransportError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: transport error (status %d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: transport error: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
