package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/envsync/internal/adapters/config"
	"go.trai.ch/envsync/internal/core/domain"
)

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := config.NewLoader().Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Root)
	assert.Equal(t, domain.DefaultPython, cfg.Python)
	assert.Equal(t, filepath.Join(dir, domain.DefaultManifestName), cfg.Manifest)
	assert.Equal(t, domain.DefaultToolchain(), cfg.Toolchain)
	assert.Empty(t, cfg.Environment)
}

func TestLoad_ConfigFileOverrides(t *testing.T) {
	dir := t.TempDir()
	content := `
version: "1"
python: python3.12
manifest: deps/requirements-dev.txt
toolchain: [pip==24.0, setuptools, wheel]
environment:
  PIP_NO_INPUT: "1"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), 0o600))

	cfg, err := config.NewLoader().Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "python3.12", cfg.Python)
	assert.Equal(t, filepath.Join(dir, "deps", "requirements-dev.txt"), cfg.Manifest)
	assert.Equal(t, []string{"pip==24.0", "setuptools", "wheel"}, cfg.Toolchain)
	assert.Equal(t, "1", cfg.Environment["PIP_NO_INPUT"])
}

func TestLoad_WalkUpDiscovery(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "services", "api")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.ConfigFileName), []byte("python: python3.11\n"), 0o600))

	cfg, err := config.NewLoader().Load(nested)
	require.NoError(t, err)

	// The config file's directory becomes the root.
	assert.Equal(t, root, cfg.Root)
	assert.Equal(t, "python3.11", cfg.Python)
	assert.Equal(t, filepath.Join(root, domain.DefaultManifestName), cfg.Manifest)
}

func TestLoad_AbsoluteManifestKept(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(t.TempDir(), "requirements.txt")
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, domain.ConfigFileName),
		[]byte("manifest: "+manifest+"\n"), 0o600))

	cfg, err := config.NewLoader().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, manifest, cfg.Manifest)
}

func TestLoad_ParseError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, domain.ConfigFileName),
		[]byte("toolchain: [unclosed\n"), 0o600))

	_, err := config.NewLoader().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrConfigParseFailed.Error())
}

func TestLoad_MissingManifestIsNotChecked(t *testing.T) {
	// The loader must not stat the manifest: a missing requirements file
	// is pip's to report with its own exit status.
	dir := t.TempDir()

	cfg, err := config.NewLoader().Load(dir)
	require.NoError(t, err)
	_, statErr := os.Stat(cfg.Manifest)
	assert.True(t, os.IsNotExist(statErr))
}
