package ports

import (
	"context"
	"io"
)

// Upgrader defines the toolchain upgrader port: it brings the packaging
// tool and its build helpers to the requested (by default, latest) versions.
// Running it on an already-current toolchain is a no-op success.
//
//go:generate mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type Upgrader interface {
	// Upgrade requests installation of the given packages, streaming the
	// delegated tool's output to the writers. Entries may carry version
	// constraints which are passed through verbatim.
	Upgrade(ctx context.Context, packages []string, stdout, stderr io.Writer) error
}

// Installer defines the dependency installer port: it installs every entry
// of a requirements manifest, delegating parsing and resolution entirely
// to the external tool.
type Installer interface {
	// Install requests installation of the manifest's entries, streaming
	// the delegated tool's output to the writers. The manifest path is
	// handed over verbatim; a missing manifest is the tool's to report.
	Install(ctx context.Context, manifestPath string, stdout, stderr io.Writer) error
}
