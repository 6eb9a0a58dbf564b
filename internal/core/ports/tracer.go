package ports

import (
	"context"
	"io"
)

// SpanConfig holds configuration for a span.
type SpanConfig struct {
	Attributes map[string]any
}

// SpanOption configures a span at creation time.
type SpanOption func(*SpanConfig)

// WithAttribute attaches a key-value pair to the span at creation time.
func WithAttribute(key string, value any) SpanOption {
	return func(cfg *SpanConfig) {
		if cfg.Attributes == nil {
			cfg.Attributes = make(map[string]any)
		}
		cfg.Attributes[key] = value
	}
}

// Span represents one traced unit of work. Writes are streamed to the
// renderer as stage output.
type Span interface {
	io.Writer

	// End completes the span.
	End()

	// RecordError records an error and marks the span as failed.
	RecordError(err error)

	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}

// Tracer creates spans for pipeline stages.
type Tracer interface {
	// Start creates a new span as a child of the span in ctx, if any.
	Start(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span)

	// EmitPlan signals that the given stages are planned for execution.
	EmitPlan(ctx context.Context, stages []string)

	// Shutdown flushes and stops the tracer's background machinery.
	Shutdown(ctx context.Context) error
}
