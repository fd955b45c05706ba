// Package pip implements the toolchain upgrader and dependency installer
// ports by delegating to pip through the configured Python interpreter.
// pip owns manifest parsing, resolution, fetching and atomicity; this
// adapter only shapes command lines.
package pip

import (
	"context"
	"io"

	"go.trai.ch/envsync/internal/core/domain"
	"go.trai.ch/envsync/internal/core/ports"
	"go.trai.ch/zerr"
)

// Tool implements ports.Upgrader and ports.Installer.
type Tool struct {
	executor ports.Executor
	python   string
	env      []string
	dir      string
}

// New creates a Tool bound to the resolved configuration.
func New(executor ports.Executor, cfg *domain.Config) *Tool {
	return &Tool{
		executor: executor,
		python:   cfg.Python,
		env:      cfg.Env(),
		dir:      cfg.Root,
	}
}

// Upgrade runs `python -m pip install --upgrade <packages...>`.
// Entries carrying version constraints are passed through verbatim, so a
// pinned toolchain (e.g. "pip==24.0") needs no special handling here.
func (t *Tool) Upgrade(ctx context.Context, packages []string, stdout, stderr io.Writer) error {
	if len(packages) == 0 {
		return domain.ErrNoToolchainPackages
	}

	cmd := domain.Command{
		Name: t.python,
		Args: append([]string{"-m", "pip", "install", "--upgrade"}, packages...),
		Env:  t.env,
		Dir:  t.dir,
	}

	if err := t.executor.Execute(ctx, cmd, stdout, stderr); err != nil {
		return zerr.Wrap(err, domain.ErrToolchainUpgradeFailed.Error())
	}

	return nil
}

// Install runs `python -m pip install -r <manifest>`. The manifest is
// never read here: a missing file surfaces as pip's own error and status.
func (t *Tool) Install(ctx context.Context, manifestPath string, stdout, stderr io.Writer) error {
	cmd := domain.Command{
		Name: t.python,
		Args: []string{"-m", "pip", "install", "-r", manifestPath},
		Env:  t.env,
		Dir:  t.dir,
	}

	if err := t.executor.Execute(ctx, cmd, stdout, stderr); err != nil {
		return zerr.Wrap(err, domain.ErrDependencyInstallFailed.Error())
	}

	return nil
}

var (
	_ ports.Upgrader  = (*Tool)(nil)
	_ ports.Installer = (*Tool)(nil)
)
