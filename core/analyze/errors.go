package analyze

import (
	"errors"
	"fmt"
)

// ErrExhausted is matched by errors.Is when every attempt failed on content
// and the ceiling was reached. The concrete error is an *ExhaustedError
// carrying the last failure for diagnostics.
//
// Example:
//
//	if errors.Is(err, analyze.ErrExhausted) {
//	    // all attempts produced invalid or non-conforming output
//	}
var ErrExhausted = errors.New("structo: retry attempts exhausted")

// ExhaustedError reports that the retry ceiling was reached without a
// conforming response. It carries the last attempt's failure and raw text so
// callers can decide whether the schema, the prompt, or the model is at
// fault.
type ExhaustedError struct {
	Attempts int
	Failure  *Failure
	RawText  string
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("structo: retry attempts exhausted after %d attempt(s), last failure: %s", e.Attempts, e.Failure.Describe())
}

func (e *ExhaustedError) Unwrap() error { return ErrExhausted }
