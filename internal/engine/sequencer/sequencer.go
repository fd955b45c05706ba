// Package sequencer executes the ordered bootstrap plan: a short sequence
// of fallible steps, short-circuiting on the first failure and propagating
// its status unchanged.
package sequencer

import (
	"context"
	"io"
	"sync"

	"go.trai.ch/envsync/internal/core/domain"
	"go.trai.ch/envsync/internal/core/ports"
	"go.trai.ch/zerr"
)

// StepStatus represents the status of a bootstrap step.
type StepStatus string

const (
	// StatusPending indicates the step is waiting to be executed.
	StatusPending StepStatus = "Pending"
	// StatusRunning indicates the step is currently executing.
	StatusRunning StepStatus = "Running"
	// StatusCompleted indicates the step finished successfully.
	StatusCompleted StepStatus = "Completed"
	// StatusFailed indicates the step execution failed.
	StatusFailed StepStatus = "Failed"
	// StatusSkipped indicates the step never started because an earlier
	// step failed.
	StatusSkipped StepStatus = "Skipped"
)

// Step is one named fallible operation of the bootstrap plan. Delegated
// tool output goes to the provided writers.
type Step struct {
	Name string
	Run  func(ctx context.Context, stdout, stderr io.Writer) error
}

// Sequencer runs steps strictly in order with no retries, no partial
// success path and no cleanup: atomicity of each step is the delegated
// tool's own concern.
type Sequencer struct {
	tracer ports.Tracer

	mu     sync.RWMutex
	status map[string]StepStatus
}

// New creates a Sequencer reporting through the given tracer.
func New(tracer ports.Tracer) *Sequencer {
	return &Sequencer{
		tracer: tracer,
		status: make(map[string]StepStatus),
	}
}

// Run executes the plan. The first step error aborts the run; later steps
// are never started and are marked skipped. The returned error keeps the
// failing step's delegated exit status recoverable via domain.ExitStatus.
func (s *Sequencer) Run(ctx context.Context, steps []Step) error {
	names := make([]string, len(steps))
	for i, step := range steps {
		names[i] = step.Name
	}
	s.initStatuses(names)

	s.tracer.EmitPlan(ctx, names)

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			s.markSkippedFrom(steps, i)
			return zerr.Wrap(err, domain.ErrBootstrapFailed.Error())
		}

		s.updateStatus(step.Name, StatusRunning)

		stepCtx, span := s.tracer.Start(ctx, step.Name)
		out := span.Writer()

		if err := step.Run(stepCtx, out, out); err != nil {
			span.RecordError(err)
			span.End()
			s.updateStatus(step.Name, StatusFailed)
			s.markSkippedFrom(steps, i+1)
			return zerr.Wrap(err, domain.ErrBootstrapFailed.Error())
		}

		span.End()
		s.updateStatus(step.Name, StatusCompleted)
	}

	return nil
}

// Status returns the current status of the named step.
func (s *Sequencer) Status(name string) StepStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status[name]
}

func (s *Sequencer) initStatuses(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range names {
		s.status[name] = StatusPending
	}
}

func (s *Sequencer) updateStatus(name string, status StepStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[name] = status
}

func (s *Sequencer) markSkippedFrom(steps []Step, from int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, step := range steps[from:] {
		s.status[step.Name] = StatusSkipped
	}
}
