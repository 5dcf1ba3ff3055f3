// Package utils provides shared low-level helpers used throughout the
// structo internals: compact/indented JSON rendering for log and CLI output,
// and string truncation so raw model responses never flood a log line.
//
// Key entry points: [JSONToString] and [TruncateString].
package utils
