package analyze

import (
	"fmt"
	"strings"

	"github.com/leofalp/structo/schema"
)

// State is the terminal state of a run.
type State int

const (
	// StateAttempting is the in-flight state. A returned Result never
	// carries it; it exists so the full state set is nameable.
	StateAttempting State = iota

	// StateSucceeded means an attempt produced a validated value.
	StateSucceeded

	// StateExhausted means every attempt failed on content (invalid JSON or
	// schema violations) and the ceiling was reached.
	StateExhausted

	// StateAborted means a transport failure or cancellation stopped the run
	// before the ceiling.
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateAttempting:
		return "attempting"
	case StateSucceeded:
		return "succeeded"
	case StateExhausted:
		return "exhausted"
	case StateAborted:
		return "aborted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Stage identifies which pipeline step rejected an attempt.
type Stage string

const (
	StageParse    Stage = "parse"
	StageValidate Stage = "validate"
)

// Failure describes one attempt's content failure. Exactly one of Message
// (parse stage) or FieldErrors (validate stage) is populated.
type Failure struct {
	Stage       Stage
	Message     string
	FieldErrors []schema.FieldError
}

// Describe renders the failure for diagnostics.
func (f *Failure) Describe() string {
	if f == nil {
		return "no failure recorded"
	}
	if f.Stage == StageParse {
		return f.Message
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d schema violation(s):", len(f.FieldErrors))
	for _, e := range f.FieldErrors {
		b.WriteString("\n- ")
		b.WriteString(e.String())
	}
	return b.String()
}

// Result is the terminal outcome of a run. Attempts counts completion calls
// actually made; RawText holds the raw response of the final attempt (empty
// when no call completed), kept so a human can diagnose whether the schema,
// the prompt, or the model is at fault.
type Result struct {
	State    State
	Attempts int
	RawText  string

	// Value is the validated object; set only when State is StateSucceeded.
	Value map[string]any

	// Failure is the last content failure; set when State is StateExhausted,
	// and on StateAborted when an earlier attempt had already failed.
	Failure *Failure

	// Err is the terminal error: *ExhaustedError, the transport error, or
	// the context error. Nil only when State is StateSucceeded.
	Err error
}
