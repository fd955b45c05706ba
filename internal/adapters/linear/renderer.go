// Package linear provides a synchronous, line-buffered renderer that
// echoes delegated tool output chronologically with step prefixes.
package linear

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/envsync/internal/core/ports"
	"go.trai.ch/envsync/internal/ui/output"
	"go.trai.ch/envsync/internal/ui/style"
)

// Renderer implements ports.Renderer for CI and non-interactive sessions.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	out    *termenv.Output

	mu      sync.Mutex
	steps   map[string]*stepState // spanID -> step state
	buffers map[string]*bytes.Buffer
}

type stepState struct {
	name      string
	startTime time.Time
}

// NewRenderer creates a Renderer. Nil writers default to the process
// streams.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Renderer{
		stdout:  stdout,
		stderr:  stderr,
		out:     termenv.NewOutput(stderr, termenv.WithProfile(output.ColorProfileANSI())),
		steps:   make(map[string]*stepState),
		buffers: make(map[string]*bytes.Buffer),
	}
}

// Start is a no-op for the linear renderer (synchronous).
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop flushes all remaining buffers.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for spanID := range r.buffers {
		r.flushBufferLocked(spanID)
	}

	return nil
}

// Wait is a no-op for the linear renderer (synchronous).
func (r *Renderer) Wait() error {
	return nil
}

// OnPlanEmit prints the ordered step plan.
func (r *Renderer) OnPlanEmit(steps []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.stderr, "Planning %d step(s): %s\n",
		len(steps), strings.Join(steps, ", "))
}

// OnStepStart prints a step start line.
func (r *Renderer) OnStepStart(spanID, _ /* parentID */, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.steps[spanID] = &stepState{name: name, startTime: startTime}
	r.buffers[spanID] = new(bytes.Buffer)

	prefix := r.out.String(fmt.Sprintf("[%s]", name)).Faint().String()
	_, _ = fmt.Fprintf(r.stderr, "%s Starting...\n", prefix)
}

// OnStepLog buffers delegated output and prints complete lines with the
// step prefix.
func (r *Renderer) OnStepLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	step, ok := r.steps[spanID]
	if !ok {
		return
	}

	buf := r.buffers[spanID]
	buf.Write(data)

	for {
		line, err := buf.ReadBytes('\n')
		if err != nil {
			if len(line) > 0 {
				// Incomplete line: keep it for the next write.
				newBuf := new(bytes.Buffer)
				newBuf.Write(line)
				r.buffers[spanID] = newBuf
			}
			break
		}
		r.printLineLocked(step.name, line)
	}
}

// OnStepComplete flushes the remaining buffer and prints the outcome.
func (r *Renderer) OnStepComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	step, ok := r.steps[spanID]
	if !ok {
		return
	}

	r.flushBufferLocked(spanID)

	duration := endTime.Sub(step.startTime).Round(time.Millisecond)
	prefix := fmt.Sprintf("[%s]", step.name)

	if err != nil {
		styled := r.out.String(fmt.Sprintf("%s %s Failed after %s: %v",
			prefix, style.Cross, duration, err)).
			Foreground(termenv.RGBColor(string(style.Red)))
		_, _ = fmt.Fprintln(r.stderr, styled.String())
	} else {
		styled := r.out.String(fmt.Sprintf("%s %s Completed in %s",
			prefix, style.Check, duration)).
			Foreground(termenv.RGBColor(string(style.Green)))
		_, _ = fmt.Fprintln(r.stderr, styled.String())
	}

	delete(r.steps, spanID)
	delete(r.buffers, spanID)
}

// printLineLocked writes one delegated output line with its step prefix.
func (r *Renderer) printLineLocked(name string, line []byte) {
	prefix := r.out.String(fmt.Sprintf("[%s]", name)).Faint().String()
	_, _ = fmt.Fprintf(r.stdout, "%s %s", prefix, line)
}

// flushBufferLocked prints any buffered partial line for the span.
func (r *Renderer) flushBufferLocked(spanID string) {
	step, ok := r.steps[spanID]
	if !ok {
		return
	}

	buf := r.buffers[spanID]
	if buf == nil || buf.Len() == 0 {
		return
	}

	rest := buf.Bytes()
	if rest[len(rest)-1] != '\n' {
		rest = append(rest, '\n')
	}
	r.printLineLocked(step.name, rest)
	buf.Reset()
}

var _ ports.Renderer = (*Renderer)(nil)
