package ports

import "go.trai.ch/envsync/internal/core/domain"

// ConfigLoader defines the interface for resolving the bootstrap
// configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load resolves the configuration for the given working directory.
	// A missing config file is not an error: defaults apply and cwd
	// becomes the root.
	Load(cwd string) (*domain.Config, error)
}
