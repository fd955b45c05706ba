package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrNoToolchainPackages is returned when the toolchain package list is empty.
	ErrNoToolchainPackages = zerr.New("no toolchain packages configured")

	// ErrToolchainUpgradeFailed is returned when the toolchain upgrade step fails.
	ErrToolchainUpgradeFailed = zerr.New("toolchain upgrade failed")

	// ErrDependencyInstallFailed is returned when the dependency install step fails.
	ErrDependencyInstallFailed = zerr.New("dependency install failed")

	// ErrBootstrapFailed is returned when the bootstrap run fails.
	ErrBootstrapFailed = zerr.New("bootstrap failed")

	// ErrExecutorStartFailed is returned when a delegated tool cannot be started.
	ErrExecutorStartFailed = zerr.New("failed to start delegated tool")

	// ErrStoreCreateFailed is returned when the state store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create state store directory")

	// ErrStoreReadFailed is returned when the run info cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read run info")

	// ErrStoreUnmarshalFailed is returned when the run info cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal run info")

	// ErrStoreMarshalFailed is returned when the run info cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal run info")

	// ErrStoreWriteFailed is returned when the run info cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write run info")

	// ErrManifestDigestFailed is returned when the manifest digest cannot be computed.
	ErrManifestDigestFailed = zerr.New("failed to digest manifest")

	// ErrWatcherStartFailed is returned when the manifest watcher cannot be started.
	ErrWatcherStartFailed = zerr.New("failed to start manifest watcher")
)
