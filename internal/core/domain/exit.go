package domain

import (
	"errors"
	"strconv"
)

// ExitError carries the exit status of a failed delegated tool.
// It survives zerr wrapping so the status can be recovered at the
// process boundary with errors.As.
type ExitError struct {
	Code int
}

// NewExitError creates an ExitError for the given non-zero status.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return "delegated tool exited with status " + strconv.Itoa(e.Code)
}

// ExitStatus maps an error to the process exit status.
// A delegated tool failure keeps its own status verbatim; nil is 0;
// anything else is an internal failure and maps to 1.
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return 1
}
