package ports

import "go.trai.ch/envsync/internal/core/domain"

// RunInfoStore defines the interface for persisting the last successful
// bootstrap record.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type RunInfoStore interface {
	// Get retrieves the run info for the given root.
	// Returns nil, nil if no run has been recorded.
	Get(root string) (*domain.RunInfo, error)

	// Put stores the run info for the given root.
	Put(root string, info domain.RunInfo) error
}
