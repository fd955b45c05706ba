// Package telemetry implements the Tracer port with OpenTelemetry and
// bridges span lifecycle events to a Renderer.
package telemetry

import (
	"context"
	"io"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/envsync/internal/core/ports"
)

// LogBufferSize determines the size of the async log channel.
const LogBufferSize = 4096

// Setup configures the global OTel SDK to route spans through the bridge,
// so spans started via otel.Tracer reach the renderer.
func Setup(bridge *Bridge) {
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))
	otel.SetTracerProvider(provider)
}

// OTelTracer is a concrete implementation of ports.Tracer using
// OpenTelemetry. Delegated tool output written to a span's Writer is
// forwarded asynchronously to the renderer.
type OTelTracer struct {
	tracer   trace.Tracer
	logChan  chan logMsg
	loopDone chan struct{}

	mu       sync.RWMutex
	renderer ports.Renderer
}

type logMsg struct {
	spanID string
	data   []byte
}

// NewOTelTracer creates an OTelTracer with the given instrumentation name,
// using the global tracer provider.
func NewOTelTracer(name string) *OTelTracer {
	return NewOTelTracerWithProvider(name, otel.GetTracerProvider())
}

// NewOTelTracerWithProvider creates an OTelTracer from an explicit tracer
// provider. Used for testing without touching global OTel state.
func NewOTelTracerWithProvider(name string, provider trace.TracerProvider) *OTelTracer {
	t := &OTelTracer{
		tracer:   provider.Tracer(name),
		logChan:  make(chan logMsg, LogBufferSize),
		loopDone: make(chan struct{}),
	}
	go t.runLoop()
	return t
}

// WithRenderer sets the renderer receiving step output.
func (t *OTelTracer) WithRenderer(r ports.Renderer) *OTelTracer {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.renderer = r
	return t
}

func (t *OTelTracer) runLoop() {
	defer close(t.loopDone)

	for msg := range t.logChan {
		t.mu.RLock()
		r := t.renderer
		t.mu.RUnlock()

		if r != nil {
			r.OnStepLog(msg.spanID, msg.data)
		}
	}
}

// Shutdown stops the background log processor and waits for it to drain.
func (t *OTelTracer) Shutdown(_ context.Context) error {
	close(t.logChan)
	<-t.loopDone
	return nil
}

// Start creates a new span for a bootstrap step.
func (t *OTelTracer) Start(ctx context.Context, name string) (context.Context, ports.Span) {
	ctx, span := t.tracer.Start(ctx, name)
	spanID := span.SpanContext().SpanID().String()

	return ctx, &OTelSpan{
		span: span,
		emit: func(data []byte) {
			select {
			case t.logChan <- logMsg{spanID: spanID, data: data}:
			default:
				// Drop output if the buffer is full to avoid blocking the step.
			}
		},
	}
}

// EmitPlan publishes the ordered step names for the run.
func (t *OTelTracer) EmitPlan(ctx context.Context, steps []string) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("plan_emitted", trace.WithAttributes(
			attribute.StringSlice("steps", steps),
		))
	}

	t.mu.RLock()
	r := t.renderer
	t.mu.RUnlock()

	if r != nil {
		r.OnPlanEmit(steps)
	}
}

// OTelSpan is a concrete implementation of ports.Span.
type OTelSpan struct {
	span trace.Span
	emit func(data []byte)
}

// Writer returns the destination for the step's delegated tool output.
func (s *OTelSpan) Writer() io.Writer {
	return spanWriter{emit: s.emit}
}

// RecordError marks the span as failed.
func (s *OTelSpan) RecordError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// End completes the span.
func (s *OTelSpan) End() {
	s.span.End()
}

type spanWriter struct {
	emit func(data []byte)
}

func (w spanWriter) Write(p []byte) (int, error) {
	// The channel send may outlive the caller's buffer reuse.
	data := make([]byte, len(p))
	copy(data, p)
	w.emit(data)
	return len(p), nil
}

var (
	_ ports.Tracer = (*OTelTracer)(nil)
	_ ports.Span   = (*OTelSpan)(nil)
)
