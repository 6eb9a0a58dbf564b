package telemetry

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/morsellabs/dashci/internal/core/ports"
)

// LogBufferSize determines the size of the async log channel.
const LogBufferSize = 4096

// OTelTracer is a concrete implementation of ports.Tracer using OpenTelemetry.
// Span output and plan events are forwarded to the attached renderer through
// a buffered channel so step execution never blocks on rendering.
type OTelTracer struct {
	tracer   trace.Tracer
	renderer ports.Renderer
	logChan  chan message
	mu       sync.RWMutex
}

// NewOTelTracer creates a new OTelTracer with the given instrumentation name.
func NewOTelTracer(name string) *OTelTracer {
	t := &OTelTracer{
		tracer:  otel.Tracer(name),
		logChan: make(chan message, LogBufferSize), // Buffered to handle bursts
	}
	go t.runLoop()
	return t
}

func (t *OTelTracer) runLoop() {
	for m := range t.logChan {
		t.mu.RLock()
		rend := t.renderer
		t.mu.RUnlock()

		if rend == nil {
			continue
		}

		switch v := m.(type) {
		case msgStageLog:
			rend.OnStageLog(v.SpanID, v.Data)
		case msgPlan:
			rend.OnPlanEmit(v.Stages)
		}
	}
}

// Shutdown stops the background log processor.
func (t *OTelTracer) Shutdown(_ context.Context) error {
	close(t.logChan)
	return nil
}

// WithRenderer attaches the renderer that receives span output.
func (t *OTelTracer) WithRenderer(r ports.Renderer) *OTelTracer {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.renderer = r
	return t
}

// Start creates a new span.
func (t *OTelTracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := &ports.SpanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	ctx, span := t.tracer.Start(ctx, name)

	wrapped := &OTelSpan{span: span}
	for key, value := range cfg.Attributes {
		wrapped.SetAttribute(key, value)
	}

	t.mu.RLock()
	rend := t.renderer
	t.mu.RUnlock()

	if rend != nil {
		spanID := span.SpanContext().SpanID().String()
		cb := func(data []byte) {
			select {
			case t.logChan <- msgStageLog{
				SpanID: spanID,
				Data:   data,
			}:
			default:
				// Drop logs if the buffer is full to avoid blocking the run
			}
		}
		wrapped.batcher = NewBatchProcessor(0, 0, cb)
	}

	return ctx, wrapped
}

// EmitPlan records the planned stages on the current span and forwards them
// to the renderer.
func (t *OTelTracer) EmitPlan(ctx context.Context, stages []string) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("plan_emitted", trace.WithAttributes(
			attribute.StringSlice("stages", stages),
		))
	}

	t.mu.RLock()
	rend := t.renderer
	t.mu.RUnlock()

	if rend != nil {
		select {
		case t.logChan <- msgPlan{Stages: stages}:
		default:
			// The plan must reach the renderer even when the buffer is full,
			// so fall back to a blocking send.
			t.logChan <- msgPlan{Stages: stages}
		}
	}
}

// OTelSpan is a concrete implementation of ports.Span using OpenTelemetry.
type OTelSpan struct {
	span    trace.Span
	batcher *BatchProcessor
}

// End completes the span.
func (s *OTelSpan) End() {
	if s.batcher != nil {
		_ = s.batcher.Close()
	}
	s.span.End()
}

// RecordError records an error and marks the span as failed.
func (s *OTelSpan) RecordError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttribute adds a key-value pair to the span.
func (s *OTelSpan) SetAttribute(key string, value any) {
	switch v := value.(type) {
	case string:
		s.span.SetAttributes(attribute.String(key, v))
	case int:
		s.span.SetAttributes(attribute.Int(key, v))
	case int64:
		s.span.SetAttributes(attribute.Int64(key, v))
	case float64:
		s.span.SetAttributes(attribute.Float64(key, v))
	case bool:
		s.span.SetAttributes(attribute.Bool(key, v))
	case []string:
		s.span.SetAttributes(attribute.StringSlice(key, v))
	default:
		s.span.SetAttributes(attribute.String(key, fmt.Sprintf("%v", v)))
	}
}

// Write satisfies io.Writer by forwarding output to the batcher, or recording
// it as a span event when no renderer is attached.
func (s *OTelSpan) Write(p []byte) (n int, err error) {
	if s.batcher != nil {
		return s.batcher.Write(p)
	}
	s.span.AddEvent("log", trace.WithAttributes(attribute.String("message", string(p))))
	return len(p), nil
}
