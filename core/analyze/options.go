package analyze

import "log/slog"

const (
	// DefaultMaxAttempts is the attempt ceiling used when the caller does
	// not override it.
	DefaultMaxAttempts = 3

	// DefaultTemperature keeps generation near-deterministic, which is what
	// structured extraction wants.
	DefaultTemperature float32 = 0.2
)

// Options holds the tunable configuration of an Analyzer. Construct via
// functional options passed to [New]; zero callers mutate it afterwards.
type Options struct {
	MaxAttempts    int
	Model          string
	Temperature    float32
	MaxTokens      int
	Logger         *slog.Logger
	TransportRetry *TransportRetryConfig
}

// Option configures an Analyzer at construction time.
type Option func(*Options)

// WithMaxAttempts sets the attempt ceiling (content failures only). Must be
// at least 1; [New] rejects smaller values.
func WithMaxAttempts(n int) Option {
	return func(o *Options) { o.MaxAttempts = n }
}

// WithModel sets the model identifier forwarded to the provider. Empty means
// the provider's default.
func WithModel(model string) Option {
	return func(o *Options) { o.Model = model }
}

// WithTemperature overrides the sampling temperature.
func WithTemperature(t float32) Option {
	return func(o *Options) { o.Temperature = t }
}

// WithMaxTokens caps the response length. Zero means no explicit cap.
func WithMaxTokens(n int) Option {
	return func(o *Options) { o.MaxTokens = n }
}

// WithLogger sets the structured logger used for per-attempt records.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithTransportRetry enables retrying of transport failures with exponential
// backoff. Off by default: without this option any transport error aborts
// the run immediately. Zero-valued fields in cfg are replaced with the
// defaults documented on [TransportRetryConfig].
func WithTransportRetry(cfg TransportRetryConfig) Option {
	return func(o *Options) {
		applyTransportRetryDefaults(&cfg)
		o.TransportRetry = &cfg
	}
}
