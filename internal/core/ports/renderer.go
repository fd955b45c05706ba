package ports

import (
	"context"
	"time"
)

// Renderer is the abstraction for output rendering. It decouples telemetry
// collection from presentation, so the same event stream can drive
// different output surfaces.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer and begins its lifecycle.
	Start(ctx context.Context) error

	// Stop signals the renderer to stop accepting new events and flush
	// any buffered output.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	// For synchronous renderers this may return immediately.
	Wait() error

	// OnPlanEmit is called once with the ordered step names for the run.
	OnPlanEmit(steps []string)

	// OnStepStart is called when a step begins execution.
	// spanID uniquely identifies this step execution; parentID is the
	// enclosing span (empty if root).
	OnStepStart(spanID, parentID, name string, startTime time.Time)

	// OnStepLog is called when a step emits delegated tool output.
	// data may contain partial lines or ANSI sequences.
	OnStepLog(spanID string, data []byte)

	// OnStepComplete is called when a step finishes.
	// err is nil on success.
	OnStepComplete(spanID string, endTime time.Time, err error)
}
