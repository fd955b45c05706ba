package ports

import (
	"context"
	"io"
)

// Span represents one traced step execution.
type Span interface {
	// Writer returns the destination for the step's delegated tool output.
	// Bytes written here reach the renderer attributed to this span.
	Writer() io.Writer

	// RecordError marks the span as failed.
	RecordError(err error)

	// End completes the span.
	End()
}

// Tracer creates spans for bootstrap steps and publishes the run plan.
//
//go:generate mockgen -source=tracer.go -destination=mocks/mock_tracer.go -package=mocks
type Tracer interface {
	// Start begins a span with the given name.
	Start(ctx context.Context, name string) (context.Context, Span)

	// EmitPlan signals the ordered step names planned for this run.
	EmitPlan(ctx context.Context, steps []string)

	// Shutdown flushes and stops the tracer.
	Shutdown(ctx context.Context) error
}
