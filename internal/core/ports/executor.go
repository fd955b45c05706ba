// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/envsync/internal/core/domain"
)

// Executor defines the interface for running delegated tools.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the command and streams its combined output to the
	// given writers. A non-zero exit maps to a domain.ExitError carrying
	// the exact status; failures to start the process are ordinary errors.
	Execute(ctx context.Context, cmd domain.Command, stdout, stderr io.Writer) error
}
