// Package shell runs delegated tools via os/exec, with a PTY in
// interactive sessions so tools render progress output normally.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
	"go.trai.ch/envsync/internal/adapters/detector"
	"go.trai.ch/envsync/internal/core/domain"
	"go.trai.ch/envsync/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor implements ports.Executor using os/exec and pty.
type Executor struct {
	interactive bool
}

// NewExecutor creates an Executor, detecting whether the session is
// interactive once at construction.
func NewExecutor() *Executor {
	return &Executor{interactive: detector.Detect().Interactive}
}

// NewPipeExecutor creates an Executor that always uses plain pipes.
// Used for testing.
func NewPipeExecutor() *Executor {
	return &Executor{}
}

// Execute runs the command and streams its output to the given writers.
// A non-zero exit maps to a domain.ExitError carrying the exact status.
func (e *Executor) Execute(ctx context.Context, cmd domain.Command, stdout, stderr io.Writer) error {
	//nolint:gosec // command comes from resolved configuration
	proc := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	proc.Env = append(os.Environ(), cmd.Env...)
	proc.Dir = cmd.Dir

	var runErr error
	if e.interactive {
		runErr = e.runPTY(proc, stdout)
	} else {
		runErr = e.runPipes(proc, stdout, stderr)
	}

	return mapExitError(runErr, cmd)
}

// runPipes runs the command with plain stdout/stderr pipes.
func (e *Executor) runPipes(proc *exec.Cmd, stdout, stderr io.Writer) error {
	proc.Stdout = stdout
	proc.Stderr = stderr
	return proc.Run()
}

// runPTY runs the command under a pseudo-terminal. The PTY merges the
// tool's stdout and stderr into a single stream.
func (e *Executor) runPTY(proc *exec.Cmd, stdout io.Writer) error {
	ptmx, err := pty.Start(proc)
	if err != nil {
		return zerr.Wrap(err, domain.ErrExecutorStartFailed.Error())
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		// EIO is the normal end-of-stream signal on Linux PTYs.
		_, _ = io.Copy(stdout, ptmx)
	}()

	waitErr := proc.Wait()
	<-ioDone
	_ = ptmx.Close()

	return waitErr
}

// mapExitError converts a non-zero tool exit into a domain.ExitError so
// the status can be propagated verbatim to the process boundary.
func mapExitError(err error, cmd domain.Command) error {
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code > 0 {
			return zerr.With(domain.NewExitError(code), "command", cmd.String())
		}
		// Terminated by signal: no meaningful delegated status.
		return zerr.Wrap(err, "delegated tool terminated by signal")
	}

	return zerr.Wrap(err, domain.ErrExecutorStartFailed.Error())
}

var _ ports.Executor = (*Executor)(nil)
