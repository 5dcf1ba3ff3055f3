package analyze

import (
	"context"
	"errors"
	"log/slog"

	"github.com/leofalp/structo/core/parse"
	"github.com/leofalp/structo/core/prompt"
	"github.com/leofalp/structo/internal/utils"
	"github.com/leofalp/structo/providers/ai"
	"github.com/leofalp/structo/schema"
)

// Analyzer runs the validate-and-retry loop for one schema against one
// completion provider. It is safe to reuse across runs but not for
// concurrent runs: each Analyze call owns its own transcript, and the
// analyzer itself holds no per-run state.
type Analyzer struct {
	provider ai.Provider
	schema   *schema.Schema
	opts     Options
}

// New creates an Analyzer. The provider is an injected dependency whose
// lifecycle (credentials, HTTP client, timeouts) belongs to the caller; the
// analyzer never reads environment state itself.
func New(provider ai.Provider, s *schema.Schema, opts ...Option) (*Analyzer, error) {
	if provider == nil {
		return nil, errors.New("structo: provider is required")
	}
	if s == nil {
		return nil, errors.New("structo: schema is required")
	}

	options := Options{
		MaxAttempts: DefaultMaxAttempts,
		Temperature: DefaultTemperature,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.MaxAttempts < 1 {
		return nil, errors.New("structo: max attempts must be at least 1")
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	return &Analyzer{provider: provider, schema: s, opts: options}, nil
}

// Analyze coerces the model's answer to userText into a value conforming to
// the schema.
//
// On success the returned error is nil and Result.Value holds the validated
// object. When every attempt fails on content the error is an
// *ExhaustedError (errors.Is ErrExhausted). A transport failure or context
// cancellation aborts the run and the underlying error is returned
// unchanged. In every case the Result is non-nil and records the terminal
// state, the number of completion calls made, and the last raw response.
func (a *Analyzer) Analyze(ctx context.Context, userText string) (*Result, error) {
	messages := []ai.Message{
		{Role: ai.RoleSystem, Content: prompt.System(a.schema)},
		{Role: ai.RoleUser, Content: userText},
	}

	var (
		lastFailure *Failure
		lastRaw     string
	)

	for attempt := 1; attempt <= a.opts.MaxAttempts; attempt++ {
		// Cooperative cancellation between attempts. Cancellation mid-call
		// is the provider's concern.
		if err := ctx.Err(); err != nil {
			return &Result{State: StateAborted, Attempts: attempt - 1, RawText: lastRaw, Failure: lastFailure, Err: err}, err
		}

		a.opts.Logger.Debug("sending completion request",
			"attempt", attempt, "max_attempts", a.opts.MaxAttempts, "schema", a.schema.Name)

		response, err := a.complete(ctx, ai.ChatRequest{
			Model:    a.opts.Model,
			Messages: messages,
			GenerationConfig: &ai.GenerationConfig{
				Temperature: a.opts.Temperature,
				MaxTokens:   a.opts.MaxTokens,
			},
		})
		if err != nil {
			// Transport failure: no corrective prompt, no further attempts,
			// error surfaced unchanged.
			a.opts.Logger.Error("completion call failed", "attempt", attempt, "error", err)
			return &Result{State: StateAborted, Attempts: attempt, RawText: lastRaw, Failure: lastFailure, Err: err}, err
		}

		raw := response.Content
		lastRaw = raw

		value, parseErr := parse.Decode(raw)
		if parseErr != nil {
			lastFailure = &Failure{Stage: StageParse, Message: parseErr.Error()}
			a.opts.Logger.Warn("response is not valid JSON",
				"attempt", attempt, "error", parseErr, "raw", utils.TruncateStringDefault(raw))

			if attempt < a.opts.MaxAttempts {
				messages = appendCorrection(messages, raw, prompt.RetryAfterParse(parseErr.Error()))
			}
			continue
		}

		if fieldErrors := a.schema.Validate(value); len(fieldErrors) > 0 {
			lastFailure = &Failure{Stage: StageValidate, FieldErrors: fieldErrors}
			a.opts.Logger.Warn("response violates the schema",
				"attempt", attempt, "violations", len(fieldErrors))

			if attempt < a.opts.MaxAttempts {
				messages = appendCorrection(messages, raw, prompt.RetryAfterValidation(fieldErrors))
			}
			continue
		}

		// Validate guarantees the root is an object when it reports no
		// violations.
		object, _ := value.(map[string]any)
		a.opts.Logger.Info("validation passed", "attempts", attempt, "schema", a.schema.Name)
		return &Result{State: StateSucceeded, Attempts: attempt, RawText: raw, Value: object}, nil
	}

	err := &ExhaustedError{Attempts: a.opts.MaxAttempts, Failure: lastFailure, RawText: lastRaw}
	return &Result{State: StateExhausted, Attempts: a.opts.MaxAttempts, RawText: lastRaw, Failure: lastFailure, Err: err}, err
}

// appendCorrection extends the transcript with the model's rejected answer
// and the corrective follow-up. The growing transcript guarantees no two
// attempts ever send an identical request.
func appendCorrection(messages []ai.Message, raw, correction string) []ai.Message {
	return append(messages,
		ai.Message{Role: ai.RoleAssistant, Content: raw},
		ai.Message{Role: ai.RoleUser, Content: correction},
	)
}
