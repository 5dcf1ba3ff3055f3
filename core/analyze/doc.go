// Package analyze drives the validate-and-retry loop that coerces free-form
// LLM output into a value conforming to a schema.
//
// Each run is a strictly sequential chain of attempts. An attempt sends the
// accumulated transcript to the completion provider, decodes the reply as
// JSON, and validates it against the schema. On a content failure (invalid
// JSON or schema violations) the full failure detail is folded into a
// corrective follow-up message and the loop tries again, up to the attempt
// ceiling. Transport failures abort the run immediately; retrying them
// is opt-in via [WithTransportRetry].
//
// The outcome is an explicit tagged [Result] (Succeeded, Exhausted or
// Aborted) alongside the usual error return, so termination behavior is
// inspectable without unwrapping errors.
//
// The primary entry points are [New] + [Analyzer.Analyze] for data-defined
// schemas, and the generic [As] for schemas derived from a Go struct type.
package analyze
