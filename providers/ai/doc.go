// Package ai defines the provider-agnostic contract between the analysis
// loop and an external LLM completion service. A [Provider] receives a
// [ChatRequest] and returns the raw generated text; everything the service
// can do wrong at the transport level (network, auth, quota) surfaces as a
// [TransportError] so callers can distinguish it from content failures.
//
// Concrete implementations live in the subpackages (openai, google).
// For tests or one-off integrations, [CompleteFunc] adapts a plain function
// into a Provider.
package ai
