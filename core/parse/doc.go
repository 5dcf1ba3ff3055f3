// Package parse turns raw model output into a generic decoded JSON value.
//
// Models sometimes wrap JSON in a markdown code fence despite being told not
// to; [ExtractJSON] strips that wrapping and surrounding whitespace. That is
// the only leniency: [Decode] is otherwise strict JSON: trailing commas,
// comments, single-quoted keys, and trailing garbage after the value are all
// rejected, never repaired. Correcting malformed output is the retry loop's
// job, via a further model call.
package parse
