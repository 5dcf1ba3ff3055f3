// Package prompt builds the instruction text sent to the model: the initial
// system prompt carrying the JSON-only directive plus the schema
// description, and the corrective follow-ups issued after a parse or
// validation failure. All functions are pure.
package prompt
