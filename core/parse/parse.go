package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ExtractJSON strips surrounding whitespace and an optional markdown code
// fence (``` or ```json) from raw model output, returning the text that
// should be parsed as JSON. Content without a fence passes through with only
// the whitespace trimmed.
func ExtractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	if idx := strings.IndexByte(s, '\n'); idx != -1 {
		// Drop the opening fence line, e.g. "```json".
		s = s[idx+1:]
	} else {
		// Single-line fenced content: "```{...}```".
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
	}

	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// Decode parses raw model output into a generic JSON value tree
// (map[string]any / []any / string / float64 / bool / nil). The input may be
// fence-wrapped; beyond that the decoding is strict, and exactly one JSON
// value is accepted; trailing non-whitespace content is an error.
func Decode(raw string) (any, error) {
	text := ExtractJSON(raw)
	if text == "" {
		return nil, errors.New("response is empty, expected a JSON object")
	}

	dec := json.NewDecoder(strings.NewReader(text))

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("invalid JSON: trailing content after the JSON value")
	}

	return value, nil
}
