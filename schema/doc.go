// Package schema defines the declarative description of the structured value
// an LLM is expected to produce, and validates decoded JSON against it.
//
// A [Schema] is plain data: an ordered list of fields, each with a
// tagged-variant [Type] (string, integer, number, boolean, enum, object,
// list). Definitions can be built three ways:
//
//   - literally, by constructing Schema/Field/Type values
//   - from a Go struct via [FromType], honoring json and jsonschema tags
//   - from a JSON or YAML definition file via [Parse] or [LoadFile]
//
// Validation ([Schema.Validate]) walks the whole value and reports every
// violation at once, in field declaration order, with full dotted/indexed
// paths such as action_items[1].due_date. It never stops at the first error:
// the retry loop needs the complete set to build one corrective prompt.
package schema
