//go:build e2e

package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

var envsyncBinary string

// pythonStub simulates "python -m pip install ..." for the scripts. It
// records every invocation to calls.log in the working directory and
// takes its exit codes from fail_upgrade / fail_install control files.
const pythonStub = `#!/bin/sh
log=calls.log
mode=install
for a in "$@"; do
  [ "$a" = "--upgrade" ] && mode=upgrade
done
echo "$mode: $*" >>"$log"

if [ "$mode" = upgrade ]; then
  if [ -f fail_upgrade ]; then
    echo "upgrade failed" >&2
    exit "$(cat fail_upgrade)"
  fi
  echo "Successfully upgraded toolchain"
  exit 0
fi

if [ -f fail_install ]; then
  echo "install failed" >&2
  exit "$(cat fail_install)"
fi

manifest=
prev=
for a in "$@"; do
  [ "$prev" = "-r" ] && manifest=$a
  prev=$a
done
if [ -n "$manifest" ] && [ ! -f "$manifest" ]; then
  echo "ERROR: Could not open requirements file: $manifest" >&2
  exit 1
fi
echo "Successfully installed requirements"
exit 0
`

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "envsync-e2e-*")
	if err != nil {
		panic(err)
	}

	envsyncBinary = filepath.Join(tmpDir, "envsync")

	//nolint:gosec // Building binary with static arguments, not user input
	cmd := exec.Command("go", "build", "-o", envsyncBinary, "./cmd/envsync")
	cmd.Dir = ".."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		panic("failed to build envsync binary: " + err.Error())
	}

	exitCode := m.Run()

	_ = os.RemoveAll(tmpDir)

	os.Exit(exitCode)
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   "testdata",
		Setup: setupE2E,
	})
}

func setupE2E(env *testscript.Env) error {
	env.Setenv("NO_COLOR", "1")
	env.Setenv("CI", "true")

	stubDir := filepath.Join(env.WorkDir, ".bin")
	if err := os.MkdirAll(stubDir, 0o750); err != nil {
		return err
	}
	//nolint:gosec // The stub must be executable
	if err := os.WriteFile(filepath.Join(stubDir, "python3"), []byte(pythonStub), 0o755); err != nil {
		return err
	}

	binDir := filepath.Dir(envsyncBinary)
	currentPath := env.Getenv("PATH")
	env.Setenv("PATH",
		stubDir+string(os.PathListSeparator)+binDir+string(os.PathListSeparator)+currentPath)

	homeDir := filepath.Join(env.WorkDir, ".home")
	if err := os.MkdirAll(homeDir, 0o750); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)

	return nil
}
