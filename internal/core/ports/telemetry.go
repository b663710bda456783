package ports

import "context"

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer creates spans around cache operations.
type Tracer interface {
	// Start begins a new span and returns a context carrying it. The
	// returned span must be ended by the caller.
	Start(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span)
}

// Span is a single traced operation.
type Span interface {
	// End completes the span.
	End()

	// RecordError attaches an error to the span.
	RecordError(err error)

	// SetAttribute sets a key/value attribute on the span.
	SetAttribute(key string, value any)
}

// SpanConfig holds options collected from SpanOption values.
type SpanConfig struct {
	// Attributes are set on the span at start time.
	Attributes map[string]any
}

// SpanOption configures a span at start time.
type SpanOption func(*SpanConfig)

// WithAttribute sets a single attribute on the span at start time.
func WithAttribute(key string, value any) SpanOption {
	return func(cfg *SpanConfig) {
		if cfg.Attributes == nil {
			cfg.Attributes = map[string]any{}
		}

		cfg.Attributes[key] = value
	}
}
