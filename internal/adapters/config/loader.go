// Package config resolves the bootstrap configuration.
package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/envsync/internal/core/domain"
	"go.trai.ch/envsync/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using an optional YAML file.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load resolves the configuration for cwd. It walks up looking for
// envsync.yaml; if none exists, defaults apply with cwd as root. The
// manifest path is resolved against the root but never stat'ed: its
// existence is the dependency installer's concern.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	root, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	var file File
	if configPath, ok := findConfig(root); ok {
		root = filepath.Dir(configPath)

		//nolint:gosec // path was discovered by walking up from cwd
		data, readErr := os.ReadFile(configPath)
		if readErr != nil {
			return nil, zerr.Wrap(readErr, domain.ErrConfigReadFailed.Error())
		}
		if parseErr := yaml.Unmarshal(data, &file); parseErr != nil {
			return nil, zerr.With(
				zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error()),
				"path", configPath,
			)
		}
	}

	return resolve(root, file), nil
}

// findConfig walks up from dir looking for the config file.
func findConfig(dir string) (string, bool) {
	for {
		candidate := filepath.Join(dir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// resolve fills defaults and anchors relative paths at the root.
func resolve(root string, file File) *domain.Config {
	cfg := &domain.Config{
		Root:        root,
		Python:      file.Python,
		Manifest:    file.Manifest,
		Toolchain:   file.Toolchain,
		Environment: file.Environment,
	}

	if cfg.Python == "" {
		cfg.Python = domain.DefaultPython
	}
	if cfg.Manifest == "" {
		cfg.Manifest = domain.DefaultManifestName
	}
	if !filepath.IsAbs(cfg.Manifest) {
		cfg.Manifest = filepath.Join(root, cfg.Manifest)
	}
	if len(cfg.Toolchain) == 0 {
		cfg.Toolchain = domain.DefaultToolchain()
	}

	return cfg
}

var _ ports.ConfigLoader = (*Loader)(nil)
